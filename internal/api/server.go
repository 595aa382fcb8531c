package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/trkr/internal/service"
)

type Server struct {
	mx             *chi.Mux
	userService    service.UserServiceI
	trackerService service.TrackerServiceI
	statsService   service.StatsServiceI
	jwtService     JWTServiceI
	syncer         SyncerI
	foodLookup     FoodLookupI
}

type ServicesList struct {
	UserService    service.UserServiceI
	TrackerService service.TrackerServiceI
	StatsService   service.StatsServiceI
	JwtService     JWTServiceI
	Syncer         SyncerI
	FoodLookup     FoodLookupI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:             chi.NewMux(),
		userService:    servicesOptions.UserService,
		trackerService: servicesOptions.TrackerService,
		statsService:   servicesOptions.StatsService,
		jwtService:     servicesOptions.JwtService,
		syncer:         servicesOptions.Syncer,
		foodLookup:     servicesOptions.FoodLookup,
	}
}

func (s *Server) Run(address string) error {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)

	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)

		r.Get("/profile", s.GetProfile)
		r.Patch("/profile", s.UpdateProfile)

		r.Post("/workouts", s.LogWorkout)
		r.Put("/workouts/{id}", s.UpdateWorkout)
		r.Delete("/workouts/{id}", s.DeleteWorkout)

		r.Post("/food", s.LogFood)
		r.Put("/food/{id}", s.UpdateFood)
		r.Delete("/food/{id}", s.DeleteFood)
		r.Post("/food/quick", s.QuickLogFood)
		r.Get("/food/recent", s.RecentFoods)
		r.Get("/food/meals", s.FoodByMeal)

		r.Post("/weights", s.LogWeight)
		r.Delete("/weights/{id}", s.DeleteWeight)

		r.Post("/water", s.AddWater)
		r.Delete("/water", s.ResetWater)

		r.Get("/templates", s.GetTemplates)
		r.Post("/templates", s.SaveTemplate)
		r.Delete("/templates/{id}", s.DeleteTemplate)
		r.Post("/templates/{id}/log", s.LogFromTemplate)

		r.Get("/stats/day", s.DayStats)
		r.Get("/stats/week", s.WeekStats)
		r.Get("/stats/weight-trend", s.WeightTrendStats)
		r.Get("/stats/weekly-averages", s.WeeklyAverageStats)
		r.Get("/stats/progress", s.GoalProgress)

		r.Get("/export", s.Export)
		r.Post("/import", s.Import)

		r.Get("/foods/search", s.SearchFoods)
		r.Get("/foods/barcode/{code}", s.FoodByBarcode)

		r.Group(func(protected chi.Router) {
			protected.Use(s.AuthMiddleware)
			protected.Use(s.LoggerExtensionMiddleware)
			protected.Post("/sync/push", s.SyncPush)
			protected.Post("/sync/pull", s.SyncPull)
			protected.Get("/sync/status", s.SyncStatus)
		})
	})

	return http.ListenAndServe(address, s.mx)
}
