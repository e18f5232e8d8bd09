package planes

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/ports/capabilities"
)

// Resolver implementa capabilities.CapabilitiesResolver contra planes.
type Resolver struct {
	client   *Client
	allowAll bool
}

// NewResolver crea un resolver.
// Si ALLOW_ALL_CAPABILITIES=true (env), todo devuelve true (modo dev / fallback).
func NewResolver(client *Client) *Resolver {
	allowAll := strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_ALL_CAPABILITIES")), "true")
	return &Resolver{
		client:   client,
		allowAll: allowAll,
	}
}

func (r *Resolver) HasFeature(ctx context.Context, in capabilities.CapabilityCheck) (bool, error) {
	capability := strings.TrimSpace(in.Capability)
	if capability == "" {
		return false, errors.New("capability required")
	}

	if r != nil && r.allowAll {
		return true, nil
	}

	if r == nil || r.client == nil || !r.client.IsConfigured() {
		return false, ErrPlanesNotConfigured
	}

	resp, err := r.client.GetCapabilities(ctx, in.UserID)
	if err != nil {
		return false, err
	}
	return resp.Capabilities[capability], nil
}
