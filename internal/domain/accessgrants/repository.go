package accessgrants

import "context"

type Repository interface {
	Create(ctx context.Context, g Grant) error
	Update(ctx context.Context, g Grant) error
	GetByID(ctx context.Context, id string) (Grant, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Grant, error)
	GetActiveGrant(ctx context.Context, ownerUserID, granteeUserID string) (Grant, error)
	ListByGrantee(ctx context.Context, granteeUserID string) ([]Grant, error)
}
