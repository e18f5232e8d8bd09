package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/events"
)

func TestSources_ManualEvents_NoPageTruncation(t *testing.T) {
	repo := NewEventRepo()
	src := NewSources(repo)

	// Bastante más que cualquier default de paginado del repo.
	const n = 1200
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		err := repo.Create(context.Background(), events.ManualEvent{
			ID:          fmt.Sprintf("ev-%04d", i),
			OwnerUserID: "owner-1",
			Title:       fmt.Sprintf("Pesaje lote %d", i),
			Date:        base.AddDate(0, 0, i%365),
			Type:        events.EventTypeWeighing,
			Status:      events.EventStatusScheduled,
		})
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	rows, err := src.ManualEvents(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("ManualEvents error: %v", err)
	}

	// La vista de fuentes lee el rebaño completo, no una página.
	if len(rows) != n {
		t.Fatalf("expected %d manual rows, got %d", n, len(rows))
	}
}

func TestSources_ManualEvents_ExcludesVoided(t *testing.T) {
	repo := NewEventRepo()
	src := NewSources(repo)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, st := range []events.EventStatus{events.EventStatusScheduled, events.EventStatusVoided} {
		err := repo.Create(context.Background(), events.ManualEvent{
			ID:          fmt.Sprintf("ev-%d", i),
			OwnerUserID: "owner-1",
			Title:       "Tacto",
			Date:        now,
			Type:        events.EventTypeDiagnosis,
			Status:      st,
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	rows, err := src.ManualEvents(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("ManualEvents error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("voided rows must not reach the calendar, got %d", len(rows))
	}
}
