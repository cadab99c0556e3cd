package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-tour/internal/domain/jobscheduler"
)

const maxDispatchEvents = 500

// JobDispatchRepository keeps the most recent dispatch events.
type JobDispatchRepository struct {
	mu     sync.RWMutex
	events []jobscheduler.DispatchEvent
}

func NewJobDispatchRepository() *JobDispatchRepository {
	return &JobDispatchRepository{}
}

func (r *JobDispatchRepository) UpsertEvent(_ context.Context, event jobscheduler.DispatchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		if r.events[i].DispatchID == event.DispatchID && r.events[i].LeagueID == event.LeagueID {
			r.events[i] = event
			return nil
		}
	}
	r.events = append(r.events, event)
	if len(r.events) > maxDispatchEvents {
		r.events = append([]jobscheduler.DispatchEvent(nil), r.events[len(r.events)-maxDispatchEvents:]...)
	}
	return nil
}

func (r *JobDispatchRepository) ListRecent(_ context.Context, jobName string, limit int) ([]jobscheduler.DispatchEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]jobscheduler.DispatchEvent, 0)
	for i := len(r.events) - 1; i >= 0; i-- {
		if jobName != "" && r.events[i].JobName != jobName {
			continue
		}
		out = append(out, r.events[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
