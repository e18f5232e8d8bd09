package animals

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/accessgrants"
	"github.com/ZecaRomero/beef-sync-2-sub006/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, grantsSvc *accessgrants.Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc, grantsSvc))

		// Ficha de animal (owner o delegado con animals:read)
		ar.Get("/{animalID}", getAnimalHandler(svc, grantsSvc))

		// Actualizar ficha (owner o delegado con animals:edit)
		ar.Patch("/{animalID}", updateAnimalHandler(svc, grantsSvc))
	})
}

type createAnimalRequest struct {
	BreedCode string `json:"breed_code"` // serie, ej. RPT
	Number    string `json:"number"`     // RG
	Tattoo    string `json:"tattoo"`
	Name      string `json:"name"`
	Breed     string `json:"breed"`
	Sex       string `json:"sex"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
	Notes     string `json:"notes"`
}

type animalResponse struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"owner_user_id"`
	BreedCode   string     `json:"breed_code"`
	Number      string     `json:"number"`
	Tattoo      string     `json:"tattoo"`
	Name        string     `json:"name"`
	Breed       string     `json:"breed"`
	Sex         Sex        `json:"sex"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type updateAnimalRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	BreedCode *string `json:"breed_code"`
	Number    *string `json:"number"`
	Tattoo    *string `json:"tattoo"`
	Name      *string `json:"name"`
	Breed     *string `json:"breed"`
	Sex       *string `json:"sex"`
	BirthDate *string `json:"birth_date"` // YYYY-MM-DD; "" limpia la fecha
	Notes     *string `json:"notes"`
}

// createAnimalHandler godoc
// @Summary Crear animal
// @Description Registra un animal del rebaño del usuario autenticado. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "Datos del animal"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		a, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			BreedCode: req.BreedCode,
			Number:    req.Number,
			Tattoo:    req.Tattoo,
			Name:      req.Name,
			Breed:     req.Breed,
			Sex:       req.Sex,
			BirthDate: bd,
			Notes:     req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Lista el rebaño propio, o el de otro dueño con `?owner=` si existe un grant activo con scope `animals:read`.
// @Tags animals
// @Produce json
// @Param owner query string false "Listar el rebaño de este dueño (requiere grant activo)"
// @Success 200 {array} animalResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /animals [get]
func listAnimalsHandler(svc *Service, grantsSvc *accessgrants.Service) http.HandlerFunc {
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

		// Rebaño ajeno: requiere grant activo con animals:read
		if owner != claims.UserID {
			g, err := grantsSvc.GetActiveGrant(r.Context(), owner, claims.UserID)
			if err != nil || !accessgrants.HasScope(g, accessgrants.ScopeAnimalsRead) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		items, err := svc.ListByOwner(r.Context(), owner)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getAnimalHandler godoc
// @Summary Ver ficha de animal
// @Description Devuelve la ficha. El dueño siempre puede; un delegado necesita grant activo con scope `animals:read`.
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service, grantsSvc *accessgrants.Service) http.HandlerFunc {
	// Owner bypass, delegado requiere animals:read
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		a, err := svc.GetByID(r.Context(), animalID)
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		if a.OwnerUserID != claims.UserID {
			g, err := grantsSvc.GetActiveGrant(r.Context(), a.OwnerUserID, claims.UserID)
			if err != nil || !accessgrants.HasScope(g, accessgrants.ScopeAnimalsRead) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// updateAnimalHandler aplica permisos:
// - owner bypass
// - delegado requiere grant activo + scope animals:edit
func updateAnimalHandler(svc *Service, grantsSvc *accessgrants.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		current, err := svc.GetByID(r.Context(), animalID)
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		if current.OwnerUserID != claims.UserID {
			g, err := grantsSvc.GetActiveGrant(r.Context(), current.OwnerUserID, claims.UserID)
			if err != nil || !accessgrants.HasScope(g, accessgrants.ScopeAnimalsEdit) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		var req updateAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			BreedCode: req.BreedCode,
			Number:    req.Number,
			Tattoo:    req.Tattoo,
			Name:      req.Name,
			Breed:     req.Breed,
			Sex:       req.Sex,
			Notes:     req.Notes,
		}

		if req.BirthDate != nil {
			if strings.TrimSpace(*req.BirthDate) == "" {
				in.ClearBirthDate = true
			} else {
				t, err := time.Parse("2006-01-02", *req.BirthDate)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
					return
				}
				in.BirthDate = &t
			}
		}

		a, err := svc.Update(r.Context(), animalID, in)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:          a.ID,
		OwnerUserID: a.OwnerUserID,
		BreedCode:   a.BreedCode,
		Number:      a.Number,
		Tattoo:      a.Tattoo,
		Name:        a.Name,
		Breed:       a.Breed,
		Sex:         a.Sex,
		BirthDate:   a.BirthDate,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
