package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Title       string
	AnimalID    string
	BreedCode   string
	Number      string
	Date        time.Time
	Type        EventType
	Description string
	Done        bool
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (ManualEvent, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return ManualEvent{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return ManualEvent{}, ErrInvalidInput
	}
	if in.Type == "" {
		return ManualEvent{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return ManualEvent{}, ErrInvalidInput
	}

	now := s.now()

	status := EventStatusScheduled
	if in.Done {
		status = EventStatusDone
	}

	e := ManualEvent{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Title:       strings.TrimSpace(in.Title),
		AnimalID:    strings.TrimSpace(in.AnimalID),
		BreedCode:   strings.TrimSpace(in.BreedCode),
		Number:      strings.TrimSpace(in.Number),
		Date:        in.Date,
		Type:        in.Type,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return ManualEvent{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (ManualEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ManualEvent{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]ManualEvent, error) {
	return s.repo.ListByOwner(ctx, ownerUserID, filter)
}

// MarkDone marca el evento como realizado.
func (s *Service) MarkDone(ctx context.Context, id string) (ManualEvent, error) {
	return s.setStatus(ctx, id, EventStatusDone)
}

// Void anula el evento (no se borra; deja de listarse).
func (s *Service) Void(ctx context.Context, id string) (ManualEvent, error) {
	return s.setStatus(ctx, id, EventStatusVoided)
}

func (s *Service) setStatus(ctx context.Context, id string, status EventStatus) (ManualEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ManualEvent{}, ErrInvalidInput
	}
	if err := s.repo.UpdateStatus(ctx, id, status, s.now()); err != nil {
		return ManualEvent{}, err
	}
	return s.repo.GetByID(ctx, id)
}
