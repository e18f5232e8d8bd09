package events

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e ManualEvent) error
	GetByID(ctx context.Context, id string) (ManualEvent, error)
	ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]ManualEvent, error)
	UpdateStatus(ctx context.Context, id string, status EventStatus, at time.Time) error
}

type ListFilter struct {
	Types []EventType
	From  *time.Time
	To    *time.Time
	Query string

	// Limit 0 usa el default del repo; un valor negativo lista sin tope
	// (lo usa la vista de fuentes del calendario consolidado, que
	// necesita el rebaño completo).
	Limit int
}
