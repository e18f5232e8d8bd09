package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/events"
)

type eventRepo struct {
	mu   sync.RWMutex
	byID map[string]events.ManualEvent
}

func NewEventRepo() events.Repository {
	return &eventRepo{
		byID: make(map[string]events.ManualEvent),
	}
}

func (r *eventRepo) Create(ctx context.Context, e events.ManualEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.ManualEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return events.ManualEvent{}, ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) ListByOwner(ctx context.Context, ownerUserID string, filter events.ListFilter) ([]events.ManualEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Limit negativo = sin tope (vista de fuentes).
	limit := filter.Limit
	if limit == 0 {
		limit = 50
	}

	out := make([]events.ManualEvent, 0)

	for _, e := range r.byID {
		if e.OwnerUserID != ownerUserID {
			continue
		}
		// Los anulados no aparecen en ningún listado.
		if e.Status == events.EventStatusVoided {
			continue
		}

		if len(filter.Types) > 0 {
			ok := false
			for _, t := range filter.Types {
				if e.Type == t {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		if filter.From != nil {
			if e.Date.Before((*filter.From).Add(-1 * time.Nanosecond)) {
				continue
			}
		}
		if filter.To != nil {
			if e.Date.After(*filter.To) {
				continue
			}
		}

		if q := strings.TrimSpace(filter.Query); q != "" {
			hay := strings.ToLower(e.Title + " " + e.Description)
			if !strings.Contains(hay, strings.ToLower(q)) {
				continue
			}
		}

		out = append(out, e)
	}

	// Orden por date desc (más reciente primero)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *eventRepo) UpdateStatus(ctx context.Context, id string, status events.EventStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	e.Status = status
	e.UpdatedAt = at
	r.byID[id] = e
	return nil
}
