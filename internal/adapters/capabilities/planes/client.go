package planes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/platform/httpclient"
)

var (
	ErrPlanesNotConfigured = errors.New("planes client not configured")
	ErrPlanesUnauthorized  = errors.New("planes unauthorized")
	ErrPlanesUpstream      = errors.New("planes upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	APIKeyHeader string
	Timeout      time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey != "" {
		hc.DefaultHeaders = map[string]string{h: apiKey}
	}

	return &Client{
		http:         hc,
		apiKey:       apiKey,
		apiKeyHeader: h,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// CapabilitiesResponse es deliberadamente simple.
type CapabilitiesResponse struct {
	// Ejemplo: {"reproduction:calendar": true, "exports:excel": false}
	Capabilities map[string]bool `json:"capabilities"`
}

// GetCapabilities trae capabilities de plan para un usuario.
func (c *Client) GetCapabilities(ctx context.Context, userID string) (CapabilitiesResponse, error) {
	if !c.IsConfigured() {
		return CapabilitiesResponse{}, ErrPlanesNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CapabilitiesResponse{}, errors.New("userID required")
	}

	path := "/v1/capabilities?user_id=" + url.QueryEscape(userID)

	var out CapabilitiesResponse
	err := c.http.DoJSON(ctx, http.MethodGet, path, nil, nil, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return CapabilitiesResponse{}, ErrPlanesUnauthorized
			default:
				return CapabilitiesResponse{}, fmt.Errorf("%w: status=%d", ErrPlanesUpstream, httpErr.StatusCode)
			}
		}
		return CapabilitiesResponse{}, fmt.Errorf("%w: %v", ErrPlanesUpstream, err)
	}

	if out.Capabilities == nil {
		out.Capabilities = map[string]bool{}
	}
	return out, nil
}
