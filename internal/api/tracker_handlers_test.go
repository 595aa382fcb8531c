package api_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/limbo/trkr/internal/api"
	"github.com/limbo/trkr/internal/service"
	"github.com/limbo/trkr/internal/store"
	"github.com/limbo/trkr/pkg/entity"
	"github.com/stretchr/testify/assert"
)

// Tracker and stats handlers run against real services over a throwaway
// store file, the mocks cover nothing the store can't.
func newTrackerServer(t *testing.T) *api.Server {
	s, err := store.New(filepath.Join(t.TempDir(), "trkr.json"))
	if err != nil {
		t.Fatal(err)
	}
	return api.New(&api.ServicesList{
		TrackerService: service.NewTrackerService(s),
		StatsService:   service.NewStatsService(s),
	})
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func newRequestWithURLParam(method, target, key, value string) *http.Request {
	return withURLParam(httptest.NewRequest(method, target, nil), key, value)
}

func jsonBody(t *testing.T, v any) io.Reader {
	data, err := sonic.ConfigDefault.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(data)
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	var v T
	if err := sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestProfileHandlers(t *testing.T) {
	serv := newTrackerServer(t)
	t.Run("get returns the defaults", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.GetProfile(rr, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		profile := decodeBody[entity.Profile](t, rr)
		assert.Equal(t, 2000, profile.DailyCalorieTarget)
	})
	t.Run("patch merges", func(t *testing.T) {
		name := "Sam"
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/profile", jsonBody(t, service.ProfileUpdateRequest{Name: &name}))
		serv.UpdateProfile(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		profile := decodeBody[entity.Profile](t, rr)
		assert.Equal(t, "Sam", profile.Name)
		assert.Equal(t, 2000, profile.DailyCalorieTarget)
	})
	t.Run("invalid field gives 400", func(t *testing.T) {
		age := 200
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/profile", jsonBody(t, service.ProfileUpdateRequest{Age: &age}))
		serv.UpdateProfile(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("invalid body gives 400", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/profile", strings.NewReader("{not json"))
		serv.UpdateProfile(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}

func TestWorkoutHandlers(t *testing.T) {
	serv := newTrackerServer(t)
	var logged entity.Workout
	t.Run("log", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts", jsonBody(t, service.LogWorkoutRequest{
			Date: "2025-03-10", Sport: entity.SportRun, DurationMinutes: 40,
		}))
		serv.LogWorkout(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
		logged = decodeBody[entity.Workout](t, rr)
		assert.NotEqual(t, uuid.UUID{}, logged.ID)
	})
	t.Run("unknown sport gives 400", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts", jsonBody(t, service.LogWorkoutRequest{
			Date: "2025-03-10", Sport: "yoga",
		}))
		serv.LogWorkout(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("update", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/v1/workouts/"+logged.ID.String(), jsonBody(t, service.LogWorkoutRequest{
			Date: "2025-03-11", Sport: entity.SportRun, DurationMinutes: 55,
		})), "id", logged.ID.String())
		serv.UpdateWorkout(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		updated := decodeBody[entity.Workout](t, rr)
		assert.Equal(t, 55, updated.DurationMinutes)
	})
	t.Run("malformed id gives 400", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := newRequestWithURLParam(http.MethodDelete, "/api/v1/workouts/not-a-uuid", "id", "not-a-uuid")
		serv.DeleteWorkout(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("delete, then the id is gone", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := newRequestWithURLParam(http.MethodDelete, "/api/v1/workouts/"+logged.ID.String(), "id", logged.ID.String())
		serv.DeleteWorkout(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Result().StatusCode)

		rr = httptest.NewRecorder()
		req = newRequestWithURLParam(http.MethodDelete, "/api/v1/workouts/"+logged.ID.String(), "id", logged.ID.String())
		serv.DeleteWorkout(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
}

func TestFoodHandlers(t *testing.T) {
	serv := newTrackerServer(t)
	t.Run("log", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/food", jsonBody(t, service.LogFoodRequest{
			Date: "2025-03-10", Meal: entity.MealLunch, FoodName: "Oats", Calories: 350, Quantity: 1,
		}))
		serv.LogFood(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
	})
	t.Run("quick log from recents", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/food/quick", jsonBody(t, service.QuickLogFoodRequest{FoodName: "oats"}))
		serv.QuickLogFood(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
		entry := decodeBody[entity.FoodEntry](t, rr)
		assert.Equal(t, "Oats", entry.FoodName)
	})
	t.Run("quick log unknown food gives 404", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/food/quick", jsonBody(t, service.QuickLogFoodRequest{FoodName: "nothing"}))
		serv.QuickLogFood(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
	t.Run("recents", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.RecentFoods(rr, httptest.NewRequest(http.MethodGet, "/api/v1/food/recent", nil))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		recents := decodeBody[[]entity.RecentFood](t, rr)
		assert.Equal(t, 1, len(recents))
	})
}

func TestWaterHandlers(t *testing.T) {
	serv := newTrackerServer(t)
	t.Run("add accumulates", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/water", jsonBody(t, service.AddWaterRequest{Amount: 500}))
		serv.AddWater(rr, req)
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)

		rr = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, "/api/v1/water", jsonBody(t, service.AddWaterRequest{Amount: 250}))
		serv.AddWater(rr, req)
		entry := decodeBody[entity.WaterEntry](t, rr)
		assert.Equal(t, 750, entry.Amount)
	})
	t.Run("zero amount gives 400", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/water", jsonBody(t, service.AddWaterRequest{Amount: 0}))
		serv.AddWater(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
	t.Run("reset", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.ResetWater(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/water", nil))
		assert.Equal(t, http.StatusNoContent, rr.Result().StatusCode)
	})
}

func TestTemplateHandlers(t *testing.T) {
	serv := newTrackerServer(t)
	var tmpl entity.WorkoutTemplate
	t.Run("save", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/templates", jsonBody(t, service.SaveTemplateRequest{
			Sport: entity.SportSwim, Name: "Morning swim", DurationMinutes: 45,
		}))
		serv.SaveTemplate(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
		tmpl = decodeBody[entity.WorkoutTemplate](t, rr)
	})
	t.Run("log from template without a body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := newRequestWithURLParam(http.MethodPost, "/api/v1/templates/"+tmpl.ID.String()+"/log", "id", tmpl.ID.String())
		serv.LogFromTemplate(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)
		w := decodeBody[entity.Workout](t, rr)
		assert.Equal(t, entity.SportSwim, w.Sport)
		assert.Equal(t, 45, w.DurationMinutes)
	})
	t.Run("unknown template gives 404", func(t *testing.T) {
		id := uuid.New().String()
		rr := httptest.NewRecorder()
		req := newRequestWithURLParam(http.MethodPost, "/api/v1/templates/"+id+"/log", "id", id)
		serv.LogFromTemplate(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})
	t.Run("delete", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := newRequestWithURLParam(http.MethodDelete, "/api/v1/templates/"+tmpl.ID.String(), "id", tmpl.ID.String())
		serv.DeleteTemplate(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Result().StatusCode)
	})
}

func TestStatsHandlers(t *testing.T) {
	serv := newTrackerServer(t)
	rr := httptest.NewRecorder()
	serv.LogFood(rr, httptest.NewRequest(http.MethodPost, "/api/v1/food", jsonBody(t, service.LogFoodRequest{
		Date: "2025-03-10", Meal: entity.MealLunch, FoodName: "Oats", Calories: 350, Quantity: 2,
	})))
	assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)

	t.Run("day", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.DayStats(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stats/day?date=2025-03-10", nil))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		day := decodeBody[entity.DayStats](t, rr)
		assert.Equal(t, 700.0, day.Calories)
	})
	t.Run("week", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.WeekStats(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stats/week?date=2025-03-10", nil))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		week := decodeBody[entity.WeekSummary](t, rr)
		assert.Equal(t, 7, len(week.Days))
		assert.Equal(t, 700.0, week.TotalCalories)
	})
	t.Run("progress", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.GoalProgress(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stats/progress", nil))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
}

func TestExportImportHandlers(t *testing.T) {
	serv := newTrackerServer(t)
	rr := httptest.NewRecorder()
	serv.LogWorkout(rr, httptest.NewRequest(http.MethodPost, "/api/v1/workouts", jsonBody(t, service.LogWorkoutRequest{
		Date: "2025-03-10", Sport: entity.SportRun, DurationMinutes: 40,
	})))
	assert.Equal(t, http.StatusCreated, rr.Result().StatusCode)

	rr = httptest.NewRecorder()
	serv.Export(rr, httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))
	assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	snapshot := rr.Body.Bytes()

	t.Run("import into a fresh instance", func(t *testing.T) {
		fresh := newTrackerServer(t)
		rr := httptest.NewRecorder()
		fresh.Import(rr, httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader(snapshot)))
		assert.Equal(t, http.StatusNoContent, rr.Result().StatusCode)

		rr = httptest.NewRecorder()
		fresh.Export(rr, httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))
		assert.Equal(t, string(snapshot), rr.Body.String())
	})
	t.Run("malformed snapshot gives 400", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.Import(rr, httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader("{broken")))
		assert.Equal(t, http.StatusBadRequest, rr.Result().StatusCode)
	})
}
