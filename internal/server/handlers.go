package server

import (
	"encoding/json"
	"net/http"

	"rulesync/internal/log"
	"rulesync/internal/service"
	"rulesync/pkg/types"
)

// Handlers holds the HTTP handlers for the synchronization operations.
type Handlers struct {
	svc *service.Service
}

// NewHandlers creates the handler set backed by the given service.
func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// HandleHealth reports liveness.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// HandleLoadGlobalRules serves POST /loadGlobalRules.
func (h *Handlers) HandleLoadGlobalRules(w http.ResponseWriter, r *http.Request) {
	h.handleSync(w, r, h.svc.LoadGlobalRules)
}

// HandleSaveGlobalRules serves POST /saveGlobalRules.
func (h *Handlers) HandleSaveGlobalRules(w http.ResponseWriter, r *http.Request) {
	h.handleSync(w, r, h.svc.SaveGlobalRules)
}

func (h *Handlers) handleSync(w http.ResponseWriter, r *http.Request, op func(types.SyncRequest) *types.SyncResult) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req types.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	writeResult(w, op(req))
}

// writeResult serializes a SyncResult. The HTTP status is 200 regardless
// of the result's success flag; errors travel inside the envelope.
func writeResult(w http.ResponseWriter, res *types.SyncResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Error("Failed to encode response: %v", err)
	}
}
