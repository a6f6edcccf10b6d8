package watch

import (
	"fmt"
	"time"

	"rulesync/internal/config"
	"rulesync/internal/log"
	"rulesync/internal/service"
	"rulesync/pkg/types"
)

// Resyncer re-runs the load operation into a project whenever the
// configured global rules directory changes. Events are debounced so a
// burst of writes produces one resync, and resyncs never overlap.
type Resyncer struct {
	svc         *service.Service
	watcher     *Watcher
	projectPath string
	debounce    time.Duration
}

// NewResyncer creates a Resyncer for the given project path. The global
// directory to watch and the debounce interval come from the service's
// configuration at construction time.
func NewResyncer(svc *service.Service, cfg *config.Config, projectPath string) (*Resyncer, error) {
	watcher, err := New()
	if err != nil {
		return nil, err
	}

	if err := watcher.AddDirectory(cfg.GlobalRulesSourceDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("cannot watch global rules directory: %w", err)
	}

	return &Resyncer{
		svc:         svc,
		watcher:     watcher,
		projectPath: projectPath,
		debounce:    time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
	}, nil
}

// Run performs one initial load, then blocks resyncing on changes until
// stop is closed.
func (r *Resyncer) Run(stop <-chan struct{}) error {
	if err := r.watcher.Start(); err != nil {
		return err
	}
	defer r.watcher.Close()

	r.resync()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case mod := <-r.watcher.FileChannel():
			log.Debug("Change detected: %s (%s)", mod.Path, mod.Op)
			if timer == nil {
				timer = time.NewTimer(r.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(r.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			r.resync()

		case <-stop:
			if timer != nil {
				timer.Stop()
			}
			return nil
		}
	}
}

func (r *Resyncer) resync() {
	res := r.svc.LoadGlobalRules(types.SyncRequest{Path: r.projectPath})
	if res.Success {
		log.Info("Resynced global rules into %s", r.projectPath)
		return
	}
	for _, e := range res.Errors {
		log.LogWithFields(log.F("type", string(e.Type))).Error("Resync failed: %s", e.Message)
	}
}
