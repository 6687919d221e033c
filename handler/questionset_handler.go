package handler

import (
	"net/http"
	"strconv"

	"answerly/common"
	"answerly/logger"
	"answerly/model"
	"answerly/service"

	"github.com/sirupsen/logrus"
)

// QuestionSetHandler holds dependencies for question set endpoints.
type QuestionSetHandler struct {
	service *service.QuestionSetService
}

func NewQuestionSetHandler(s *service.QuestionSetService) *QuestionSetHandler {
	return &QuestionSetHandler{service: s}
}

// CreateSet godoc
// @Summary      Create a question set
// @Tags         sets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        set body model.CreateSetRequest true "Question set payload"
// @Success      201  {object}  model.QuestionSet
// @Failure      400  {object}  common.AppError
// @Router       /api/sets [post]
func (h *QuestionSetHandler) CreateSet(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateSetRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	log := logger.Log.WithFields(logrus.Fields{
		"user_id": userID,
		"title":   req.Title,
	})
	log.Info("Create question set request received")

	set, err := h.service.CreateSet(userID, req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create set", err)
	}

	writeJSON(w, http.StatusCreated, set)
	return nil
}

// ListMySets returns every set authored by the caller.
func (h *QuestionSetHandler) ListMySets(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	sets, err := h.service.ListSetsForUser(userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve sets", err)
	}
	if sets == nil {
		sets = []*model.QuestionSet{}
	}

	writeJSON(w, http.StatusOK, sets)
	return nil
}

// UpdateSet applies a partial update to a set owned by the caller.
func (h *QuestionSetHandler) UpdateSet(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	setID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid set ID in URL path", err)
	}

	var req model.UpdateSetRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	set, err := h.service.UpdateSet(userID, setID, req)
	if err != nil {
		switch err {
		case service.ErrSetNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		case service.ErrNotSetOwner:
			return common.NewAppError(http.StatusForbidden, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not update set", err)
		}
	}

	writeJSON(w, http.StatusOK, set)
	return nil
}

// DeleteSet removes a set owned by the caller.
func (h *QuestionSetHandler) DeleteSet(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	setID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid set ID in URL path", err)
	}

	if err := h.service.DeleteSet(userID, setID); err != nil {
		switch err {
		case service.ErrSetNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		case service.ErrNotSetOwner:
			return common.NewAppError(http.StatusForbidden, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not delete set", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "Set deleted successfully"})
	return nil
}

// GetPublicSet godoc
// @Summary      Resolve a public share link
// @Tags         sets
// @Produce      json
// @Param        slug path string true "Public slug of the set"
// @Success      200  {object}  model.QuestionSet
// @Failure      404  {object}  common.AppError
// @Router       /api/sets/{slug} [get]
func (h *QuestionSetHandler) GetPublicSet(w http.ResponseWriter, r *http.Request) *common.AppError {
	set, err := h.service.GetPublicSet(r.PathValue("slug"))
	if err != nil {
		if err == service.ErrSetNotFound {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve set", err)
	}

	writeJSON(w, http.StatusOK, set)
	return nil
}

// SubmitAnswers records a respondent's submission against a public set.
// No authentication is required; submissions default to Anonymous.
func (h *QuestionSetHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SubmitAnswersRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	var userID *int
	if id, ok := r.Context().Value(UserIDKey).(int); ok {
		userID = &id
	}

	_, err := h.service.SubmitAnswers(r.PathValue("slug"), req, userID)
	if err != nil {
		if err == service.ErrSetNotFound {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not submit answers", err)
	}

	writeJSON(w, http.StatusCreated, map[string]string{"msg": "Answers submitted!"})
	return nil
}

// GetSetAnswers returns a set together with all its submissions.
func (h *QuestionSetHandler) GetSetAnswers(w http.ResponseWriter, r *http.Request) *common.AppError {
	set, answers, err := h.service.GetSetAnswers(r.PathValue("slug"))
	if err != nil {
		if err == service.ErrSetNotFound {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve answers", err)
	}
	if answers == nil {
		answers = []*model.Answer{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"set":     set,
		"answers": answers,
	})
	return nil
}

// AllSets lists every set on the platform for the admin dashboard.
func (h *QuestionSetHandler) AllSets(w http.ResponseWriter, r *http.Request) *common.AppError {
	sets, err := h.service.AllSets()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve sets", err)
	}
	if sets == nil {
		sets = []*model.QuestionSet{}
	}

	writeJSON(w, http.StatusOK, sets)
	return nil
}

// AllAnswers lists every answer on the platform for the admin dashboard.
func (h *QuestionSetHandler) AllAnswers(w http.ResponseWriter, r *http.Request) *common.AppError {
	answers, err := h.service.AllAnswers()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve answers", err)
	}
	if answers == nil {
		answers = []*model.Answer{}
	}

	writeJSON(w, http.StatusOK, answers)
	return nil
}
