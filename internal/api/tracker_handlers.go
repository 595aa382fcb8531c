package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/trkr/internal/error_values"
	"github.com/limbo/trkr/internal/service"
	"github.com/limbo/trkr/pkg/httputil"
)

// idFromURL parses the {id} route parameter.
func idFromURL(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// writeTrackerError maps tracker service failures onto HTTP statuses.
func writeTrackerError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrValidation):
		logger.Error(action+" error: validation failed")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "validation failed", err)
	case errors.Is(err, errorvalues.ErrRecordNotFound):
		logger.Error(action + " error: unexist record")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "record with such id doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrTemplateNotFound):
		logger.Error(action + " error: unexist template")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "template with such id doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrFoodNotInRecents):
		logger.Error(action + " error: food not in recents")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "food is not in recent foods", nil)
	default:
		logger.Error(action+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during "+action, nil)
	}
}

func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, s.trackerService.Profile())
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req service.ProfileUpdateRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("updating profile error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	profile, err := s.trackerService.UpdateProfile(&req)
	if err != nil {
		writeTrackerError(w, logger, "updating profile", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, profile)
	logger.Info("profile updated")
}

func (s *Server) LogWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req service.LogWorkoutRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("logging workout error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	workout, err := s.trackerService.LogWorkout(&req)
	if err != nil {
		writeTrackerError(w, logger, "logging workout", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, workout)
	logger.Info("workout logged", slog.String("id", workout.ID.String()))
}

func (s *Server) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := idFromURL(r)
	if err != nil {
		logger.Error("updating workout error: invalid id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid record id", nil)
		return
	}
	var req service.LogWorkoutRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("updating workout error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	workout, err := s.trackerService.UpdateWorkout(id, &req)
	if err != nil {
		writeTrackerError(w, logger, "updating workout", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, workout)
	logger.Info("workout updated", slog.String("id", id.String()))
}

func (s *Server) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := idFromURL(r)
	if err != nil {
		logger.Error("deleting workout error: invalid id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid record id", nil)
		return
	}
	if err := s.trackerService.DeleteWorkout(id); err != nil {
		writeTrackerError(w, logger, "deleting workout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("workout deleted", slog.String("id", id.String()))
}

func (s *Server) LogFood(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req service.LogFoodRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("logging food error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	entry, err := s.trackerService.LogFood(&req)
	if err != nil {
		writeTrackerError(w, logger, "logging food", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, entry)
	logger.Info("food logged", slog.String("id", entry.ID.String()))
}

func (s *Server) UpdateFood(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := idFromURL(r)
	if err != nil {
		logger.Error("updating food error: invalid id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid record id", nil)
		return
	}
	var req service.LogFoodRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("updating food error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	entry, err := s.trackerService.UpdateFood(id, &req)
	if err != nil {
		writeTrackerError(w, logger, "updating food", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, entry)
	logger.Info("food updated", slog.String("id", id.String()))
}

func (s *Server) DeleteFood(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := idFromURL(r)
	if err != nil {
		logger.Error("deleting food error: invalid id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid record id", nil)
		return
	}
	if err := s.trackerService.DeleteFood(id); err != nil {
		writeTrackerError(w, logger, "deleting food", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("food deleted", slog.String("id", id.String()))
}

func (s *Server) QuickLogFood(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req service.QuickLogFoodRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("quick logging food error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	entry, err := s.trackerService.QuickLogFood(&req)
	if err != nil {
		writeTrackerError(w, logger, "quick logging food", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, entry)
	logger.Info("food quick logged", slog.String("id", entry.ID.String()))
}

func (s *Server) RecentFoods(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, s.trackerService.RecentFoods())
}

func (s *Server) LogWeight(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req service.LogWeightRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("logging weight error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	entry, err := s.trackerService.LogWeight(&req)
	if err != nil {
		writeTrackerError(w, logger, "logging weight", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, entry)
	logger.Info("weight logged", slog.String("id", entry.ID.String()))
}

func (s *Server) DeleteWeight(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := idFromURL(r)
	if err != nil {
		logger.Error("deleting weight error: invalid id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid record id", nil)
		return
	}
	if err := s.trackerService.DeleteWeight(id); err != nil {
		writeTrackerError(w, logger, "deleting weight", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("weight deleted", slog.String("id", id.String()))
}

func (s *Server) AddWater(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req service.AddWaterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("adding water error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	entry, err := s.trackerService.AddWater(&req)
	if err != nil {
		writeTrackerError(w, logger, "adding water", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, entry)
	logger.Info("water added", slog.String("date", entry.Date))
}

// ResetWater zeroes the water counter for ?date= or today when absent.
func (s *Server) ResetWater(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	date := r.URL.Query().Get("date")
	if err := s.trackerService.ResetWater(date); err != nil {
		writeTrackerError(w, logger, "resetting water", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("water reset")
}

func (s *Server) GetTemplates(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, s.trackerService.Templates())
}

func (s *Server) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req service.SaveTemplateRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("saving template error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	tmpl, err := s.trackerService.SaveTemplate(&req)
	if err != nil {
		writeTrackerError(w, logger, "saving template", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, tmpl)
	logger.Info("template saved", slog.String("id", tmpl.ID.String()))
}

func (s *Server) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := idFromURL(r)
	if err != nil {
		logger.Error("deleting template error: invalid id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid template id", nil)
		return
	}
	if err := s.trackerService.DeleteTemplate(id); err != nil {
		writeTrackerError(w, logger, "deleting template", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("template deleted", slog.String("id", id.String()))
}

type logFromTemplateRequest struct {
	Date string `json:"date"`
}

func (s *Server) LogFromTemplate(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := idFromURL(r)
	if err != nil {
		logger.Error("logging from template error: invalid id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid template id", nil)
		return
	}
	// Body is optional: an empty one means "log it today".
	var req logFromTemplateRequest
	defer r.Body.Close()
	_ = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	workout, err := s.trackerService.LogFromTemplate(id, req.Date)
	if err != nil {
		writeTrackerError(w, logger, "logging from template", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, workout)
	logger.Info("workout logged from template", slog.String("id", workout.ID.String()))
}
