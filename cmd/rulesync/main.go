package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	// A .env next to the process may set RULESYNC_CONFIG; absence is fine.
	_ = godotenv.Load()

	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
