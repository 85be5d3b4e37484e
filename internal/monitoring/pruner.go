package monitoring

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"forum/internal/services"
)

// Pruner trims the activity log on a cron schedule so it does not grow
// without bound.
type Pruner struct {
	eventSvc  services.EventServiceProvider
	schedule  cron.Schedule
	retention time.Duration
	done      chan bool
}

// NewPruner creates a pruner from a standard cron expression and a
// retention window.
func NewPruner(eventSvc services.EventServiceProvider, scheduleExpr string, retention time.Duration) (*Pruner, error) {
	schedule, err := cron.ParseStandard(scheduleExpr)
	if err != nil {
		return nil, err
	}
	return &Pruner{
		eventSvc:  eventSvc,
		schedule:  schedule,
		retention: retention,
		done:      make(chan bool),
	}, nil
}

// Run starts the pruning loop.
func (p *Pruner) Run() {
	log.Println("Starting background event pruner...")

	for {
		next := p.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-p.done:
			timer.Stop()
			log.Println("Stopping background event pruner.")
			return
		case <-timer.C:
			p.prune()
		}
	}
}

// Stop halts the pruner.
func (p *Pruner) Stop() {
	p.done <- true
}

func (p *Pruner) prune() {
	cutoff := time.Now().Add(-p.retention)
	removed, err := p.eventSvc.PruneOlderThan(cutoff)
	if err != nil {
		log.Printf("Pruner: failed to prune events: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Pruner: removed %d events older than %s", removed, cutoff.Format(time.RFC3339))
	}
}
