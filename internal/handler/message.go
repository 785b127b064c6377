package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/reconnect/internal/service"
)

// MessageHandler serves goal recommendations and message generation.
type MessageHandler struct {
	messages *service.MessageService
	logger   *slog.Logger
}

func NewMessageHandler(messages *service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

type generateRequest struct {
	Purpose   string `json:"purpose" validate:"required,max=300"`
	ToneStyle string `json:"tone_style" validate:"required,max=50"`
}

// HandleRecommendedGoals returns up to three goals.
//
// HTTP: GET /api/messages/recommended-goals
func (h *MessageHandler) HandleRecommendedGoals(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	goals, err := h.messages.RecommendedGoals(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

// HandleGenerate drafts and stores a message.
//
// HTTP: POST /api/messages/generate
// BODY: {"purpose": "...", "tone_style": "logical" | "emotional" | "curious" | any}
func (h *MessageHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	out, err := h.messages.Generate(r.Context(), user.ID, req.Purpose, req.ToneStyle)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HTTP: GET /api/messages?skip=0&limit=100
func (h *MessageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	msgs, err := h.messages.List(r.Context(), user.ID, opts)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// HTTP: GET /api/messages/{id}
func (h *MessageHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	msg, err := h.messages.Get(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}
