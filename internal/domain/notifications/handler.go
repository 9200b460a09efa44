package notifications

import (
	"errors"
	"net/http"

	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/notification-settings", func(nr chi.Router) {
		nr.Get("/", listSettingsHandler(svc))
		nr.Post("/", replaceSettingsHandler(svc))
	})
}

type settingRequest struct {
	Type    string   `json:"type" validate:"required,oneof=walk meal health general"`
	Enabled bool     `json:"enabled"`
	Times   []string `json:"times" validate:"dive,hhmm"`
}

// settingResponse es un setting de recordatorio del usuario.
type settingResponse struct {
	ID      string   `json:"id"`
	Type    Type     `json:"type"`
	Enabled bool     `json:"enabled"`
	Times   []string `json:"times"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// listSettingsHandler godoc
// @Summary Listar mis recordatorios
// @Tags notification-settings
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} settingResponse
// @Failure 401 {object} errorResponse
// @Router /notification-settings [get]
func listSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.List(r.Context(), uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toSettingResponses(items))
	}
}

// replaceSettingsHandler godoc
// @Summary Reemplazar mis recordatorios
// @Description Reemplaza el conjunto completo (no hace merge). Un array vacío borra todos.
// @Tags notification-settings
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body []settingRequest true "Settings"
// @Success 200 {array} settingResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /notification-settings [post]
func replaceSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req []settingRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		// null no es un array; para borrar todo se manda [].
		if req == nil {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid body: expected a JSON array")
			return
		}

		in := make([]SettingInput, 0, len(req))
		for _, item := range req {
			in = append(in, SettingInput{
				Type:    Type(item.Type),
				Enabled: item.Enabled,
				Times:   item.Times,
			})
		}

		saved, err := svc.Replace(r.Context(), uid, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toSettingResponses(saved))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrInvalidTime):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func toSettingResponses(items []Setting) []settingResponse {
	out := make([]settingResponse, 0, len(items))
	for _, s := range items {
		times := s.Times
		if times == nil {
			times = []string{}
		}
		out = append(out, settingResponse{
			ID:      s.ID,
			Type:    s.Type,
			Enabled: s.Enabled,
			Times:   times,
		})
	}
	return out
}
