package healthevents

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/health-events", func(hr chi.Router) {
		hr.Post("/", createHealthEventHandler(svc))
		hr.Get("/{petID}", listHealthEventsHandler(svc))
		hr.Get("/id/{id}", getHealthEventHandler(svc))
		hr.Put("/{id}", updateHealthEventHandler(svc))
		hr.Put("/group/{groupID}", updateGroupHandler(svc))
		hr.Delete("/{id}", deleteHealthEventHandler(svc))
	})
}

// createHealthEventRequest registra un evento o una serie recurrente.
type createHealthEventRequest struct {
	PetID       string `json:"pet_id" validate:"required"`
	Type        string `json:"type" validate:"required" enums:"vaccine,deworming,flea_treatment,vet_visit,medication,grooming,other"`
	Date        string `json:"date" validate:"required,ymd"` // YYYY-MM-DD
	Note        string `json:"note"`
	DocumentURL string `json:"document_url" validate:"omitempty,url"`
	Completed   bool   `json:"completed"`
	Recurrence  string `json:"recurrence" enums:"none,1y,6m,3m,1m"` // vacío = none
}

// updateHealthEventRequest edita un único evento (no toca recurrence ni group_id).
type updateHealthEventRequest struct {
	Type        *string `json:"type"`
	Date        *string `json:"date" validate:"omitempty,ymd"`
	Note        *string `json:"note"`
	DocumentURL *string `json:"document_url" validate:"omitempty,url"`
	Completed   *bool   `json:"completed"`
}

// updateGroupRequest edita una serie. Si recurrence cambia, la serie se regenera.
type updateGroupRequest struct {
	Type        *string `json:"type"`
	Note        *string `json:"note"`
	DocumentURL *string `json:"document_url" validate:"omitempty,url"`
	Completed   *bool   `json:"completed"`
	Recurrence  *string `json:"recurrence" enums:"none,1y,6m,3m,1m"`
}

// healthEventResponse representa un evento de salud.
type healthEventResponse struct {
	ID          string     `json:"id"`
	PetID       string     `json:"pet_id"`
	Type        EventType  `json:"type"`
	Date        string     `json:"date"`
	Note        string     `json:"note"`
	DocumentURL string     `json:"document_url"`
	Completed   bool       `json:"completed"`
	Recurrence  Recurrence `json:"recurrence"`
	GroupID     *string    `json:"group_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type deleteResponse struct {
	Deleted int `json:"deleted"`
}

// errorResponse es el cuerpo de error común ({"error": "..."}).
type errorResponse struct {
	Error string `json:"error"`
}

// createHealthEventHandler godoc
// @Summary Crear evento de salud
// @Description Con recurrence 1y/6m/3m/1m crea una serie de 4 eventos con el mismo group_id (fechas ancla + i*intervalo, con el día ajustado al último del mes si no existe). Sin recurrence (o none) crea un único evento. Códigos desconocidos => 400.
// @Tags health-events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createHealthEventRequest true "Evento"
// @Success 201 {array} healthEventResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /health-events [post]
func createHealthEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createHealthEventRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		typ, err := ParseEventType(req.Type)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		rec, err := ParseRecurrence(req.Recurrence)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		date, _ := time.Parse(httpjson.DateLayout, req.Date)

		events, err := svc.Create(r.Context(), uid, CreateInput{
			PetID:       req.PetID,
			Type:        typ,
			Date:        date,
			Note:        req.Note,
			DocumentURL: req.DocumentURL,
			Completed:   req.Completed,
			Recurrence:  rec,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httpjson.WriteJSON(w, http.StatusCreated, toResponses(events))
	}
}

// listHealthEventsHandler godoc
// @Summary Listar eventos de salud de una mascota
// @Description Orden por fecha ascendente. Requiere ser owner o member (403 si no).
// @Tags health-events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param types query string false "Lista CSV de tipos (ej: vaccine,deworming)"
// @Param from query string false "Fecha mínima (YYYY-MM-DD)"
// @Param to query string false "Fecha máxima (YYYY-MM-DD)"
// @Success 200 {array} healthEventResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /health-events/{petID} [get]
func listHealthEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"), uid, filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}

// getHealthEventHandler godoc
// @Summary Ver evento de salud
// @Description 404 si no existe o si el usuario no pertenece a la mascota.
// @Tags health-events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param id path string true "ID del evento"
// @Success 200 {object} healthEventResponse
// @Failure 404 {object} errorResponse
// @Router /health-events/id/{id} [get]
func getHealthEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		e, err := svc.Get(r.Context(), chi.URLParam(r, "id"), uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toResponse(e))
	}
}

// updateHealthEventHandler godoc
// @Summary Editar un evento
// @Description Edita solo este evento; no propaga a la serie ni cambia recurrence/group_id.
// @Tags health-events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param id path string true "ID del evento"
// @Param payload body updateHealthEventRequest true "Campos a modificar"
// @Success 200 {object} healthEventResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /health-events/{id} [put]
func updateHealthEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req updateHealthEventRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		p := Patch{
			Note:        req.Note,
			DocumentURL: req.DocumentURL,
			Completed:   req.Completed,
		}
		if req.Type != nil {
			t, err := ParseEventType(*req.Type)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			p.Type = &t
		}
		if req.Date != nil {
			d, _ := time.Parse(httpjson.DateLayout, *req.Date)
			p.Date = &d
		}

		e, err := svc.Update(r.Context(), chi.URLParam(r, "id"), uid, p)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toResponse(e))
	}
}

// updateGroupHandler godoc
// @Summary Editar una serie
// @Description Misma recurrence (o ausente): actualiza type/note/document_url/completed en todos los eventos, sin tocar fechas. Recurrence distinta: borra la serie y genera 4 eventos nuevos desde la fecha del primero, con el mismo group_id. recurrence "none" deja un único evento sin group_id.
// @Tags health-events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param groupID path string true "ID de la serie"
// @Param payload body updateGroupRequest true "Campos a modificar"
// @Success 200 {array} healthEventResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /health-events/group/{groupID} [put]
func updateGroupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req updateGroupRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		p := Patch{
			Note:        req.Note,
			DocumentURL: req.DocumentURL,
			Completed:   req.Completed,
		}
		if req.Type != nil {
			t, err := ParseEventType(*req.Type)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			p.Type = &t
		}
		if req.Recurrence != nil {
			rec, err := ParseRecurrence(*req.Recurrence)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			p.Recurrence = &rec
		}

		events, err := svc.UpdateGroup(r.Context(), chi.URLParam(r, "groupID"), uid, p)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, toResponses(events))
	}
}

// deleteHealthEventHandler godoc
// @Summary Eliminar evento
// @Description Si el evento pertenece a una serie, se elimina la serie completa.
// @Tags health-events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param id path string true "ID del evento"
// @Success 200 {object} deleteResponse
// @Failure 404 {object} errorResponse
// @Router /health-events/{id} [delete]
func deleteHealthEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		n, err := svc.Delete(r.Context(), chi.URLParam(r, "id"), uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, deleteResponse{Deleted: n})
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	var filter ListFilter

	if v := strings.TrimSpace(r.URL.Query().Get("types")); v != "" {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			t, err := ParseEventType(part)
			if err != nil {
				return ListFilter{}, err
			}
			filter.Types = append(filter.Types, t)
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(httpjson.DateLayout, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be YYYY-MM-DD")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(httpjson.DateLayout, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be YYYY-MM-DD")
		}
		filter.To = &t
	}

	return filter, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidEventType), errors.Is(err, ErrInvalidRecurrence):
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		httpjson.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, err.Error())
	default:
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func toResponse(e HealthEvent) healthEventResponse {
	out := healthEventResponse{
		ID:          e.ID,
		PetID:       e.PetID,
		Type:        e.Type,
		Date:        e.Date.Format(httpjson.DateLayout),
		Note:        e.Note,
		DocumentURL: e.DocumentURL,
		Completed:   e.Completed,
		Recurrence:  e.Recurrence,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.GroupID != "" {
		g := e.GroupID
		out.GroupID = &g
	}
	return out
}

func toResponses(items []HealthEvent) []healthEventResponse {
	out := make([]healthEventResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toResponse(e))
	}
	return out
}
