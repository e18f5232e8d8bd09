package reproduction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/accessgrants"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/middleware"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

// CapabilityCalendar es el feature flag del calendario consolidado.
// Si no hay resolver configurado el endpoint queda abierto (dev/local).
const CapabilityCalendar = "reproduction:calendar"

func RegisterRoutes(r chi.Router, svc *Service, grantsSvc *accessgrants.Service, caps capabilities.CapabilitiesResolver) {
	r.Route("/reproduction", func(rr chi.Router) {
		rr.Get("/calendar", calendarHandler(svc, grantsSvc, caps))
		rr.Get("/birth-forecasts", birthForecastsHandler(svc, grantsSvc, caps))
	})
}

// calendarEventResponse es un evento proyectado del calendario consolidado.
type calendarEventResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	AnimalID    string            `json:"animal_id,omitempty"`
	BreedCode   string            `json:"breed_code,omitempty"`
	Number      string            `json:"number,omitempty"`
	Tattoo      string            `json:"tattoo,omitempty"`
	Date        time.Time         `json:"date"`
	Type        EventType         `json:"type"`
	Description string            `json:"description,omitempty"`
	Status      EventStatus       `json:"status"`
	Origin      Origin            `json:"origin"`
	Extra       map[string]string `json:"extra,omitempty"`
}

type pageResponse struct {
	Items  []calendarEventResponse `json:"items"`
	Total  int                     `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

// calendarHandler godoc
// @Summary Calendario reproductivo consolidado
// @Description Proyección de solo lectura que reconcilia eventos manuales, llegadas de receptoras (llegada, DG previsto, parto previsto) y reagendas de examen andrológico. Con `?owner=` lee el rebaño de otro dueño (requiere grant `calendar:read`).
// @Tags reproduction
// @Produce json
// @Param owner query string false "Dueño del rebaño (default: usuario autenticado)"
// @Param type query string false "Filtrar por tipo de evento"
// @Param from query string false "Fecha mínima (YYYY-MM-DD o RFC3339)"
// @Param to query string false "Fecha máxima (YYYY-MM-DD o RFC3339)"
// @Param q query string false "Texto libre en título/descripción/identificación del animal"
// @Param limit query int false "Máximo de eventos por página (1-200). Por defecto 50"
// @Param offset query int false "Desplazamiento de paginado"
// @Success 200 {object} pageResponse
// @Failure 400 {string} string "filtros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 503 {string} string "fuentes no disponibles"
// @Router /reproduction/calendar [get]
func calendarHandler(svc *Service, grantsSvc *accessgrants.Service, caps capabilities.CapabilitiesResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := resolveOwner(w, r, grantsSvc, caps)
		if !ok {
			return
		}

		filter, err := parseFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		page, err := svc.Calendar(r.Context(), owner, filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPageResponse(page))
	}
}

// birthForecastsHandler godoc
// @Summary Partos previstos
// @Description Lista solo los partos previstos: por factura de receptoras y por transferencia embrionaria con diagnóstico positivo.
// @Tags reproduction
// @Produce json
// @Param owner query string false "Dueño del rebaño (default: usuario autenticado)"
// @Param from query string false "Fecha mínima (YYYY-MM-DD o RFC3339)"
// @Param to query string false "Fecha máxima (YYYY-MM-DD o RFC3339)"
// @Param q query string false "Texto libre"
// @Param limit query int false "Máximo de eventos por página (1-200). Por defecto 50"
// @Param offset query int false "Desplazamiento de paginado"
// @Success 200 {object} pageResponse
// @Failure 400 {string} string "filtros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 503 {string} string "fuentes no disponibles"
// @Router /reproduction/birth-forecasts [get]
func birthForecastsHandler(svc *Service, grantsSvc *accessgrants.Service, caps capabilities.CapabilitiesResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := resolveOwner(w, r, grantsSvc, caps)
		if !ok {
			return
		}

		filter, err := parseFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		page, err := svc.BirthForecasts(r.Context(), owner, filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPageResponse(page))
	}
}

// resolveOwner autentica, chequea el feature flag y resuelve sobre qué
// rebaño se lee (propio, o ajeno con grant calendar:read). Si devuelve
// ok=false ya escribió la respuesta de error.
func resolveOwner(w http.ResponseWriter, r *http.Request, grantsSvc *accessgrants.Service, caps capabilities.CapabilitiesResolver) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	if caps != nil {
		allowed, err := caps.HasFeature(r.Context(), capabilities.CapabilityCheck{
			UserID:     claims.UserID,
			Capability: CapabilityCalendar,
		})
		// Si el resolver está caído no bloqueamos el calendario.
		if err == nil && !allowed {
			http.Error(w, "forbidden", http.StatusForbidden)
			return "", false
		}
	}

	owner := strings.TrimSpace(r.URL.Query().Get("owner"))
	if owner == "" {
		owner = claims.UserID
	}
	if owner != claims.UserID {
		g, err := grantsSvc.GetActiveGrant(r.Context(), owner, claims.UserID)
		if err != nil || !accessgrants.HasScope(g, accessgrants.ScopeCalendarRead) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return "", false
		}
	}

	return owner, true
}

func parseFilter(r *http.Request) (Filter, error) {
	q := r.URL.Query()

	f := Filter{
		Type:  EventType(strings.TrimSpace(q.Get("type"))),
		Query: strings.TrimSpace(q.Get("q")),
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return Filter{}, errors.New("from must be YYYY-MM-DD or RFC3339")
		}
		f.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return Filter{}, errors.New("to must be YYYY-MM-DD or RFC3339")
		}
		f.To = &t
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Filter{}, errors.New("limit must be a positive integer")
		}
		f.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Filter{}, errors.New("offset must be a non-negative integer")
		}
		f.Offset = n
	}

	return f, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSourcesUnavailable):
		http.Error(w, "event sources unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPageResponse(p Page) pageResponse {
	items := make([]calendarEventResponse, 0, len(p.Items))
	for _, e := range p.Items {
		items = append(items, calendarEventResponse{
			ID:          e.ID,
			Title:       e.Title,
			AnimalID:    e.AnimalID,
			BreedCode:   e.Key.BreedCode,
			Number:      e.Key.Number,
			Tattoo:      e.Key.Tattoo,
			Date:        e.Date,
			Type:        e.Type,
			Description: e.Description,
			Status:      e.Status,
			Origin:      e.Origin,
			Extra:       e.Extra,
		})
	}

	return pageResponse{
		Items:  items,
		Total:  p.Total,
		Limit:  p.Limit,
		Offset: p.Offset,
	}
}

// writeJSON duplicado a propósito (ver nota en animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
