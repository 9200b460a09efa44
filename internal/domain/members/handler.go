package members

import (
	"errors"
	"net/http"
	"time"

	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets/{petID}/members", func(mr chi.Router) {
		mr.Get("/", listMembersHandler(svc))
		mr.Post("/", addMemberHandler(svc))
		mr.Delete("/{userID}", removeMemberHandler(svc))
	})
}

type addMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// membershipResponse representa la relación usuario-mascota.
type membershipResponse struct {
	PetID     string    `json:"pet_id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role" enums:"owner,member"`
	CreatedAt time.Time `json:"created_at"`
}

// listMembersHandler godoc
// @Summary Listar miembros de una mascota
// @Description Devuelve owner y miembros. Requiere ser owner o miembro; si no, 404 (no se revela existencia).
// @Tags members
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} membershipResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID}/members [get]
func listMembersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"), uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]membershipResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMembershipResponse(m))
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}

// addMemberHandler godoc
// @Summary Agregar miembro
// @Description Solo el owner agrega miembros (rol member). Idempotente si el usuario ya pertenece.
// @Tags members
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body addMemberRequest true "Usuario a agregar"
// @Success 201 {object} membershipResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID}/members [post]
func addMemberHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req addMemberRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		m, err := svc.AddMember(r.Context(), chi.URLParam(r, "petID"), uid, req.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusCreated, toMembershipResponse(m))
	}
}

// removeMemberHandler godoc
// @Summary Remover miembro
// @Description El owner remueve a cualquier miembro; un miembro solo a sí mismo. El owner no puede ser removido (400).
// @Tags members
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param userID path string true "Usuario a remover"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID}/members/{userID} [delete]
func removeMemberHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		err := svc.RemoveMember(r.Context(), chi.URLParam(r, "petID"), uid, chi.URLParam(r, "userID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// errorResponse es el cuerpo de error común ({"error": "..."}).
type errorResponse struct {
	Error string `json:"error"`
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrOwnerRemoval):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		httpjson.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, "not found")
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func toMembershipResponse(m Membership) membershipResponse {
	return membershipResponse{
		PetID:     m.PetID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}
