package accessgrants

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Owner actions sobre su propio rebaño
	r.Route("/grants", func(gr chi.Router) {
		gr.Post("/", inviteGrantHandler(svc))
		gr.Get("/", listGrantsByOwnerHandler(svc))

		gr.Post("/{grantID}/accept", acceptGrantHandler(svc))
		gr.Post("/{grantID}/revoke", revokeGrantHandler(svc))
	})

	// Delegado: ver sus invitaciones / grants
	r.Get("/me/grants", listMyGrantsHandler(svc))
}

type inviteGrantRequest struct {
	GranteeUserID string  `json:"grantee_user_id"`
	Scopes        []Scope `json:"scopes"`
}

type grantResponse struct {
	ID            string     `json:"id"`
	OwnerUserID   string     `json:"owner_user_id"`
	GranteeUserID string     `json:"grantee_user_id"`
	Scopes        []Scope    `json:"scopes"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	RevokedAt     *time.Time `json:"revoked_at,omitempty"`
}

// inviteGrantHandler godoc
// @Summary Invitar delegado
// @Description El dueño invita a un delegado (veterinario/empleado) sobre todo su rebaño. Scopes vacíos => default animals:read + calendar:read.
// @Tags grants
// @Accept json
// @Produce json
// @Param payload body inviteGrantRequest true "Delegado y scopes"
// @Success 201 {object} grantResponse
// @Failure 400 {string} string "invalid json / scopes inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /grants [post]
func inviteGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req inviteGrantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.GranteeUserID) == "" {
			http.Error(w, "grantee_user_id required", http.StatusBadRequest)
			return
		}

		g, err := svc.Invite(r.Context(), InviteInput{
			OwnerUserID:   claims.UserID,
			GranteeUserID: strings.TrimSpace(req.GranteeUserID),
			Scopes:        req.Scopes,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toGrantResponse(g))
	}
}

func listGrantsByOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]grantResponse, 0, len(items))
		for _, g := range items {
			out = append(out, toGrantResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listMyGrantsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// status=invited,active (CSV opcional)
		allowed := parseStatusFilter(r.URL.Query().Get("status"))

		items, err := svc.ListByGrantee(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]grantResponse, 0, len(items))
		for _, g := range items {
			if len(allowed) > 0 && !allowed[g.Status] {
				continue
			}
			out = append(out, toGrantResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func acceptGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		grantID := chi.URLParam(r, "grantID")

		g, err := svc.Accept(r.Context(), grantID, claims.UserID)
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "grant not found", http.StatusNotFound)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			case ErrBadState:
				http.Error(w, "invalid state", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toGrantResponse(g))
	}
}

func revokeGrantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		grantID := chi.URLParam(r, "grantID")

		g, err := svc.Revoke(r.Context(), grantID, claims.UserID)
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "grant not found", http.StatusNotFound)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toGrantResponse(g))
	}
}

func parseStatusFilter(csv string) map[Status]bool {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return nil
	}
	out := map[Status]bool{}
	for _, p := range strings.Split(csv, ",") {
		st := Status(strings.TrimSpace(p))
		if st == "" {
			continue
		}
		out[st] = true
	}
	return out
}

func toGrantResponse(g Grant) grantResponse {
	return grantResponse{
		ID:            g.ID,
		OwnerUserID:   g.OwnerUserID,
		GranteeUserID: g.GranteeUserID,
		Scopes:        g.Scopes,
		Status:        g.Status,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
		RevokedAt:     g.RevokedAt,
	}
}

// writeJSON duplicado a propósito (ver nota en animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
