package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/service"
)

// OnboardingHandler serves the three questionnaire steps and the profile
// endpoints that sit beside them.
type OnboardingHandler struct {
	onboarding *service.OnboardingService
	profiles   *service.ProfileService
	logger     *slog.Logger
}

func NewOnboardingHandler(onboarding *service.OnboardingService, profiles *service.ProfileService, logger *slog.Logger) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding, profiles: profiles, logger: logger}
}

// Counts are pointers so that an explicit 0 passes "required".
type step1Request struct {
	BreakupDate        string `json:"breakup_date" validate:"required,datetime=2006-01-02"`
	RelationshipYears  *int   `json:"relationship_years" validate:"required,gte=0"`
	RelationshipMonths *int   `json:"relationship_months" validate:"required,gte=0"`
	MyTendency         string `json:"my_tendency" validate:"required,tendency"`
	PartnerTendency    string `json:"partner_tendency" validate:"required,tendency"`
}

type step2Request struct {
	BreakupReason string `json:"breakup_reason" validate:"required,breakup_reason"`
}

type step3Request struct {
	StrategyType string `json:"strategy_type" validate:"required,strategy_type"`
}

// HandleStep1 records the relationship basics.
//
// HTTP: POST /api/onboarding/step1
func (h *OnboardingHandler) HandleStep1(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	var req step1Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	date, err := model.ParseDate(req.BreakupDate)
	if err != nil {
		writeError(w, h.logger, apperror.ValidationFailed("breakup_date", "breakup_date must be a date in YYYY-MM-DD format"))
		return
	}

	ob, err := h.onboarding.Step1(r.Context(), user.ID, service.Step1Input{
		BreakupDate:        date,
		RelationshipYears:  *req.RelationshipYears,
		RelationshipMonths: *req.RelationshipMonths,
		MyTendency:         model.Tendency(req.MyTendency),
		PartnerTendency:    model.Tendency(req.PartnerTendency),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ob)
}

// HandleStep2 records the breakup reason.
//
// HTTP: POST /api/onboarding/step2
func (h *OnboardingHandler) HandleStep2(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	var req step2Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	ob, err := h.onboarding.Step2(r.Context(), user.ID, model.BreakupReason(req.BreakupReason))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ob)
}

// HandleStep3 records the chosen strategy.
//
// HTTP: POST /api/onboarding/step3
func (h *OnboardingHandler) HandleStep3(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	var req step3Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	ob, err := h.onboarding.Step3(r.Context(), user.ID, model.StrategyType(req.StrategyType))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ob)
}

// HandleGet returns the caller's answers so far.
//
// HTTP: GET /api/onboarding
func (h *OnboardingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	ob, err := h.onboarding.Get(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ob)
}

// HandleCreateProfile creates the caller's profile. A second call conflicts.
//
// HTTP: POST /api/onboarding/profile
func (h *OnboardingHandler) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	var req service.ProfileInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	profile, err := h.profiles.Create(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleUpdateProfile merges the fields present in the body.
//
// HTTP: PUT /api/onboarding/profile
func (h *OnboardingHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	var req service.ProfileInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	profile, err := h.profiles.Update(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HTTP: GET /api/onboarding/profile
func (h *OnboardingHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	profile, err := h.profiles.Get(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleSetStep moves the profile progress marker.
//
// HTTP: PUT /api/onboarding/step/{step}
func (h *OnboardingHandler) HandleSetStep(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		writeError(w, h.logger, apperror.ValidationFailed("step", "step must be an integer"))
		return
	}
	profile, err := h.profiles.SetStep(r.Context(), user.ID, model.ProfileStep(step))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
