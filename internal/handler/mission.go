package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/reconnect/internal/service"
)

// MissionHandler is CRUD over the caller's missions.
type MissionHandler struct {
	missions *service.MissionService
	logger   *slog.Logger
}

func NewMissionHandler(missions *service.MissionService, logger *slog.Logger) *MissionHandler {
	return &MissionHandler{missions: missions, logger: logger}
}

type missionCreateRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
}

// HTTP: POST /api/missions
func (h *MissionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	var req missionCreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	mission, err := h.missions.Create(r.Context(), user.ID, service.MissionInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, mission)
}

// HandleList pages through the caller's missions in creation order.
//
// HTTP: GET /api/missions?skip=0&limit=100
func (h *MissionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	missions, err := h.missions.List(r.Context(), user.ID, opts)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, missions)
}

// HTTP: GET /api/missions/{id}
func (h *MissionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	mission, err := h.missions.Get(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, mission)
}

// HandleUpdate applies whichever of title, description and is_completed
// the body contains.
//
// HTTP: PUT /api/missions/{id}
func (h *MissionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req service.MissionUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	mission, err := h.missions.Update(r.Context(), user.ID, id, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, mission)
}

// HTTP: DELETE /api/missions/{id}  →  204
func (h *MissionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.missions.Delete(r.Context(), user.ID, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
