package memory

import (
	"context"
	"sync"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/events"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/reproduction"
)

// SourceData son las fuentes externas de un dueño (facturas de receptoras,
// tactos, TEs y exámenes andrológicos). En producción salen de Postgres;
// acá se siembran por seed para dev y tests.
type SourceData struct {
	Receptors []reproduction.ReceptorRow
	Diagnoses []reproduction.DiagnosisRow
	Transfers []reproduction.TransferRow
	Exams     []reproduction.ExamRow
}

type Sources struct {
	mu      sync.RWMutex
	events  events.Repository
	byOwner map[string]SourceData
}

// NewSources arma un reproduction.Sources sobre el repo de eventos
// manuales más datos sembrados en memoria.
func NewSources(eventsRepo events.Repository) *Sources {
	return &Sources{
		events:  eventsRepo,
		byOwner: make(map[string]SourceData),
	}
}

// Seed reemplaza los datos externos de un dueño.
func (s *Sources) Seed(ownerUserID string, data SourceData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byOwner[ownerUserID] = data
}

func (s *Sources) ManualEvents(ctx context.Context, ownerUserID string) ([]reproduction.ManualRow, error) {
	// El calendario consolidado necesita el rebaño completo, no una página.
	items, err := s.events.ListByOwner(ctx, ownerUserID, events.ListFilter{Limit: -1})
	if err != nil {
		return nil, err
	}

	out := make([]reproduction.ManualRow, 0, len(items))
	for _, e := range items {
		out = append(out, reproduction.ManualRow{
			ID:          e.ID,
			Title:       e.Title,
			AnimalID:    e.AnimalID,
			BreedCode:   e.BreedCode,
			Number:      e.Number,
			Date:        e.Date,
			Type:        string(e.Type),
			Description: e.Description,
			Done:        e.Status == events.EventStatusDone,
		})
	}
	return out, nil
}

func (s *Sources) ReceptorArrivals(ctx context.Context, ownerUserID string) ([]reproduction.ReceptorRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := s.byOwner[ownerUserID]
	out := make([]reproduction.ReceptorRow, len(data.Receptors))
	copy(out, data.Receptors)
	return out, nil
}

func (s *Sources) Diagnoses(ctx context.Context, ownerUserID string) ([]reproduction.DiagnosisRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := s.byOwner[ownerUserID]
	out := make([]reproduction.DiagnosisRow, len(data.Diagnoses))
	copy(out, data.Diagnoses)
	return out, nil
}

func (s *Sources) EmbryoTransfers(ctx context.Context, ownerUserID string) ([]reproduction.TransferRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := s.byOwner[ownerUserID]
	out := make([]reproduction.TransferRow, len(data.Transfers))
	copy(out, data.Transfers)
	return out, nil
}

func (s *Sources) AndrologicalExams(ctx context.Context, ownerUserID string) ([]reproduction.ExamRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := s.byOwner[ownerUserID]
	out := make([]reproduction.ExamRow, len(data.Exams))
	copy(out, data.Exams)
	return out, nil
}

var _ reproduction.Sources = (*Sources)(nil)
