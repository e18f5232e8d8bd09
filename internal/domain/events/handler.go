package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/accessgrants"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, grantsSvc *accessgrants.Service) {
	r.Route("/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc, grantsSvc))
		er.Get("/", listEventsHandler(svc, grantsSvc))

		// Completar / anular (owner o delegado con events:void)
		er.Post("/{eventID}/done", setStatusHandler(svc, grantsSvc, EventStatusDone))
		er.Post("/{eventID}/void", setStatusHandler(svc, grantsSvc, EventStatusVoided))
	})
}

// createEventRequest es el cuerpo para registrar un evento manual de calendario.
type createEventRequest struct {
	Title       string    `json:"title"`
	AnimalID    string    `json:"animal_id"`
	BreedCode   string    `json:"breed_code"`
	Number      string    `json:"number"`
	Date        string    `json:"date"` // YYYY-MM-DD o RFC3339
	Type        EventType `json:"type" enums:"INSEMINATION,EMBRYO_TRANSFER,DG,VACCINE,WEIGHING,BIRTH,ANDROLOGICAL_EXAM,NOTE"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`

	// Opcional: cargar sobre el rebaño de otro dueño (requiere grant events:create).
	Owner string `json:"owner"`
}

// eventResponse representa un evento manual devuelto por la API.
type eventResponse struct {
	ID          string      `json:"id"`
	OwnerUserID string      `json:"owner_user_id"`
	Title       string      `json:"title"`
	AnimalID    string      `json:"animal_id,omitempty"`
	BreedCode   string      `json:"breed_code,omitempty"`
	Number      string      `json:"number,omitempty"`
	Date        time.Time   `json:"date"`
	Type        EventType   `json:"type"`
	Description string      `json:"description"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// createEventHandler godoc
// @Summary Crear evento manual de calendario
// @Description Crea un evento del calendario reproductivo/sanitario. Sobre rebaño ajeno requiere grant activo con scope `events:create`.
// @Tags events
// @Accept json
// @Produce json
// @Param payload body createEventRequest true "Datos del evento; date en YYYY-MM-DD o RFC3339"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / date inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /events [post]
func createEventHandler(svc *Service, grantsSvc *accessgrants.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		owner := strings.TrimSpace(req.Owner)
		if owner == "" {
			owner = claims.UserID
		}
		if owner != claims.UserID {
			g, err := grantsSvc.GetActiveGrant(r.Context(), owner, claims.UserID)
			if err != nil || !accessgrants.HasScope(g, accessgrants.ScopeEventsCreate) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		t, err := parseDate(req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD or RFC3339", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), owner, CreateInput{
			Title:       req.Title,
			AnimalID:    req.AnimalID,
			BreedCode:   req.BreedCode,
			Number:      req.Number,
			Date:        t,
			Type:        req.Type,
			Description: req.Description,
			Done:        req.Done,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// listEventsHandler godoc
// @Summary Listar eventos manuales
// @Description Lista los eventos manuales del rebaño propio, o de otro dueño con `?owner=` (requiere grant `calendar:read`). Filtros por tipos, rango de fechas y texto.
// @Tags events
// @Produce json
// @Param owner query string false "Dueño del rebaño (default: usuario autenticado)"
// @Param limit query int false "Máximo de eventos a devolver (1-200). Por defecto 50"
// @Param types query string false "Lista CSV de tipos (ej: DG,VACCINE)"
// @Param from query string false "Fecha mínima (YYYY-MM-DD o RFC3339)"
// @Param to query string false "Fecha máxima (YYYY-MM-DD o RFC3339)"
// @Param q query string false "Texto libre en título/descripción"
// @Success 200 {array} eventResponse
// @Failure 400 {string} string "filtros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /events [get]
func listEventsHandler(svc *Service, grantsSvc *accessgrants.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		owner := strings.TrimSpace(r.URL.Query().Get("owner"))
		if owner == "" {
			owner = claims.UserID
		}
		if owner != claims.UserID {
			g, err := grantsSvc.GetActiveGrant(r.Context(), owner, claims.UserID)
			if err != nil || !accessgrants.HasScope(g, accessgrants.ScopeCalendarRead) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByOwner(r.Context(), owner, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func setStatusHandler(svc *Service, grantsSvc *accessgrants.Service, status EventStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		eventID := chi.URLParam(r, "eventID")

		ev, err := svc.GetByID(r.Context(), eventID)
		if err != nil || strings.TrimSpace(ev.ID) == "" {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		// Owner bypass; delegado requiere events:void (cubre done y void:
		// ambas cierran el evento para el calendario).
		if ev.OwnerUserID != claims.UserID {
			g, err := grantsSvc.GetActiveGrant(r.Context(), ev.OwnerUserID, claims.UserID)
			if err != nil || !accessgrants.HasScope(g, accessgrants.ScopeEventsVoid) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		var updated ManualEvent
		if status == EventStatusDone {
			updated, err = svc.MarkDone(r.Context(), eventID)
		} else {
			updated, err = svc.Void(r.Context(), eventID)
		}
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "not found") {
				http.Error(w, "event not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(updated))
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	// types=DG,VACCINE
	if v := strings.TrimSpace(r.URL.Query().Get("types")); v != "" {
		parts := strings.Split(v, ",")
		out := make([]EventType, 0, len(parts))
		for _, p := range parts {
			t := EventType(strings.TrimSpace(p))
			if t == "" {
				continue
			}
			out = append(out, t)
		}
		if len(out) > 0 {
			filter.Types = out
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return ListFilter{}, errors.New("from must be YYYY-MM-DD or RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return ListFilter{}, errors.New("to must be YYYY-MM-DD or RFC3339")
		}
		filter.To = &t
	}

	if v := strings.TrimSpace(r.URL.Query().Get("q")); v != "" {
		filter.Query = v
	}

	return filter, nil
}

// parseDate acepta fecha simple o timestamp completo (la UI manda ambos).
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func toEventResponse(e ManualEvent) eventResponse {
	return eventResponse{
		ID:          e.ID,
		OwnerUserID: e.OwnerUserID,
		Title:       e.Title,
		AnimalID:    e.AnimalID,
		BreedCode:   e.BreedCode,
		Number:      e.Number,
		Date:        e.Date,
		Type:        e.Type,
		Description: e.Description,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// writeJSON duplicado a propósito (ver nota en animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
