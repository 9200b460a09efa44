package users

import (
	"errors"
	"net/http"
	"time"

	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me", getMeHandler(svc))
	r.Put("/me", putMeHandler(svc))
}

type profileRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// userResponse es el perfil del usuario autenticado.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// errorResponse es el cuerpo de error común ({"error": "..."}).
type errorResponse struct {
	Error string `json:"error"`
}

// getMeHandler godoc
// @Summary Ver mi perfil
// @Tags users
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} userResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /me [get]
func getMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		u, err := svc.Get(r.Context(), uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// putMeHandler godoc
// @Summary Guardar mi perfil
// @Description Crea o actualiza el perfil. El email es el destino de los recordatorios.
// @Tags users
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body profileRequest true "Perfil"
// @Success 200 {object} userResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /me [put]
func putMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req profileRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		u, err := svc.SaveProfile(r.Context(), uid, ProfileInput{Email: req.Email, Name: req.Name})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, err.Error())
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
