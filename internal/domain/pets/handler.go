package pets

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		// Perfil (owner o member)
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
	})
}

type createPetRequest struct {
	Name      string `json:"name" validate:"required"`
	Species   string `json:"species" validate:"omitempty,oneof=dog cat other"`
	Breed     string `json:"breed"`
	Sex       string `json:"sex" validate:"omitempty,oneof=male female unknown"`
	BirthDate string `json:"birth_date" validate:"omitempty,ymd"` // YYYY-MM-DD opcional
	Notes     string `json:"notes"`
}

// petResponse representa el perfil de la mascota.
type petResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Species   Species   `json:"species"`
	Breed     string    `json:"breed"`
	Sex       Sex       `json:"sex"`
	BirthDate *string   `json:"birth_date,omitempty"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name    *string `json:"name"`
	Species *string `json:"species" validate:"omitempty,oneof=dog cat other"`
	Breed   *string `json:"breed"`
	Sex     *string `json:"sex" validate:"omitempty,oneof=male female unknown"`
	Notes   *string `json:"notes"`
	// birth_date se procesa aparte (null = limpiar)
}

// errorResponse es el cuerpo de error común ({"error": "..."}).
type errorResponse struct {
	Error string `json:"error"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Crea la mascota y asigna al usuario autenticado como owner.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createPetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		var bd *time.Time
		if req.BirthDate != "" {
			t, _ := time.Parse(httpjson.DateLayout, req.BirthDate)
			bd = &t
		}

		p, err := svc.Create(r.Context(), uid, CreateInput{
			Name:      req.Name,
			Species:   Species(req.Species),
			Breed:     req.Breed,
			Sex:       Sex(req.Sex),
			BirthDate: bd,
			Notes:     req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httpjson.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Description Mascotas donde el usuario es owner o member.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} petResponse
// @Failure 401 {object} errorResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListForUser(r.Context(), uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Description Requiere ser owner o member; si no, 404.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		p, err := svc.Get(r.Context(), chi.URLParam(r, "petID"), uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description PATCH parcial. `birth_date: null` limpia la fecha. Requiere ser owner o member.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		// Se decodifica a map primero para detectar presencia de birth_date.
		raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid body")
			return
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		var req updatePetRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := httpjson.Validate(&req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		bd, err := parseBirthDatePatch(fields)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		in := UpdateProfileInput{
			Name:      req.Name,
			Breed:     req.Breed,
			Notes:     req.Notes,
			BirthDate: bd,
		}
		if req.Species != nil {
			sp := Species(*req.Species)
			in.Species = &sp
		}
		if req.Sex != nil {
			sx := Sex(*req.Sex)
			in.Sex = &sx
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), uid, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func parseBirthDatePatch(fields map[string]json.RawMessage) (patchBirthDate, error) {
	v, exists := fields["birth_date"]
	if !exists {
		return patchBirthDate{}, nil
	}
	if strings.TrimSpace(string(v)) == "null" {
		return patchBirthDate{Present: true}, nil
	}

	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return patchBirthDate{}, errors.New("birth_date must be YYYY-MM-DD or null")
	}
	t, err := time.Parse(httpjson.DateLayout, s)
	if err != nil {
		return patchBirthDate{}, errors.New("birth_date must be YYYY-MM-DD or null")
	}
	return patchBirthDate{Present: true, Value: &t}, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "pet not found")
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		ID:        p.ID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Sex:       p.Sex,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.BirthDate != nil {
		s := p.BirthDate.Format(httpjson.DateLayout)
		out.BirthDate = &s
	}
	return out
}
