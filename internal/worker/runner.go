// internal/worker/runner.go
package worker

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Jiu-020812/orange-fanta-back/internal/services"
)

// Runner periodically drains due sync jobs across all users. It is the
// only place jobs run without an HTTP caller.
type Runner struct {
	syncService *services.SyncService
	interval    time.Duration
	batchSize   int

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewRunner(syncService *services.SyncService, interval time.Duration, batchSize int) *Runner {
	return &Runner{
		syncService: syncService,
		interval:    interval,
		batchSize:   batchSize,
		stopCh:      make(chan struct{}),
	}
}

func (r *Runner) Start() {
	r.wg.Add(1)
	go r.loop()
	logrus.WithFields(logrus.Fields{
		"interval":   r.interval,
		"batch_size": r.batchSize,
	}).Info("Sync worker started")
}

// Stop signals the loop and waits for the in-flight batch to finish.
func (r *Runner) Stop() {
	close(r.stopCh)
	r.wg.Wait()
	logrus.Info("Sync worker stopped")
}

func (r *Runner) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.runBatch()
		}
	}
}

func (r *Runner) runBatch() {
	result, err := r.syncService.RunDueJobs(nil, r.batchSize)
	if err != nil {
		logrus.WithError(err).Error("Sync worker batch failed")
		return
	}
	if result.Processed > 0 {
		logrus.WithFields(logrus.Fields{
			"processed": result.Processed,
			"succeeded": result.Succeeded,
			"failed":    result.Failed,
		}).Info("Sync worker batch completed")
	}
}
