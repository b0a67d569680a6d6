package api

import (
	"net/http"

	"github.com/phrazzld/tutor-api/internal/api/shared"
	"github.com/phrazzld/tutor-api/internal/tutor"
)

// TutorHandler serves the course plan and lesson chat endpoints.
type TutorHandler struct {
	service tutor.Service
}

// NewTutorHandler creates a new TutorHandler
func NewTutorHandler(service tutor.Service) *TutorHandler {
	return &TutorHandler{service: service}
}

// BuildPlanSpec handles POST /build-plan-spec requests
func (h *TutorHandler) BuildPlanSpec(w http.ResponseWriter, r *http.Request) {
	var body tutor.TopicRequestBody
	shared.DecodeJSONOrEmpty(r, &body)

	plan, err := h.service.BuildCoursePlanSpec(r.Context(), body)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, plan)
}

// LessonChat handles POST /lesson-chat requests
func (h *TutorHandler) LessonChat(w http.ResponseWriter, r *http.Request) {
	var body tutor.LessonChatRequestBody
	shared.DecodeJSONOrEmpty(r, &body)

	result, err := h.service.LessonChat(r.Context(), body)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// respondWithServiceError relies on the service having logged the failure.
func (h *TutorHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
}

// Health handles GET /health requests
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
