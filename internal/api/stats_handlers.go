package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/trkr/pkg/httputil"
)

// intQuery reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func intQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func (s *Server) DayStats(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	httputil.WriteJSONResponse(w, http.StatusOK, s.statsService.Day(date))
}

func (s *Server) WeekStats(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	httputil.WriteJSONResponse(w, http.StatusOK, s.statsService.Week(date))
}

func (s *Server) WeightTrendStats(w http.ResponseWriter, r *http.Request) {
	lastN := intQuery(r, "last", 30)
	httputil.WriteJSONResponse(w, http.StatusOK, s.statsService.WeightTrend(lastN))
}

func (s *Server) WeeklyAverageStats(w http.ResponseWriter, r *http.Request) {
	lastN := intQuery(r, "last", 0)
	httputil.WriteJSONResponse(w, http.StatusOK, s.statsService.WeeklyWeightAverages(lastN))
}

func (s *Server) GoalProgress(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, s.statsService.Progress())
}

func (s *Server) FoodByMeal(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	httputil.WriteJSONResponse(w, http.StatusOK, s.statsService.FoodByMeal(date))
}

func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	data, err := s.trackerService.Export()
	if err != nil {
		logger.Error("export error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during export", nil)
		return
	}
	httputil.WriteRawJSON(w, http.StatusOK, data)
	logger.Info("data exported")
}

func (s *Server) Import(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("import error: reading body failed")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := s.trackerService.Import(data); err != nil {
		logger.Error("import error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "import failed: malformed snapshot", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("data imported")
}

func (s *Server) SearchFoods(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	query := r.URL.Query().Get("q")
	if query == "" {
		logger.Error("food search error: empty query")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	page := intQuery(r, "page", 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	foods, err := s.foodLookup.Search(ctx, query, page)
	if err != nil {
		logger.Error("food search error: provider error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadGateway, "food database is unavailable", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, foods)
	logger.Info("food search served", slog.Int("results", len(foods)))
}

func (s *Server) FoodByBarcode(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	code := chi.URLParam(r, "code")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	food, err := s.foodLookup.Barcode(ctx, code)
	if err != nil {
		logger.Error("barcode lookup error: provider error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadGateway, "food database is unavailable", nil)
		return
	}
	if food == nil {
		logger.Error("barcode lookup error: unknown product")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "product with such barcode doesn't exist", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, food)
	logger.Info("barcode lookup served", slog.String("code", code))
}

// SyncPush drains the outbox to the remote database right now instead of
// waiting for the next background tick.
func (s *Server) SyncPush(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	if err := s.syncer.Drain(ctx); err != nil {
		logger.Error("sync push error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadGateway, "pushing local changes failed", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"pending": s.syncer.Pending(),
	})
	logger.Info("sync push done")
}

// SyncPull replaces the synced local collections with the remote state.
func (s *Server) SyncPull(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	if err := s.syncer.PullAll(ctx); err != nil {
		logger.Error("sync pull error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadGateway, "pulling remote state failed", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("sync pull done")
}

func (s *Server) SyncStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"pending": s.syncer.Pending(),
	})
}
