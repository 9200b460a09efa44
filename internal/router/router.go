package router

import (
	"context"
	"net/http"

	_ "pet-care-log/docs"
	mem "pet-care-log/internal/adapters/storage/memory"
	"pet-care-log/internal/adapters/storage/sqlstore"
	"pet-care-log/internal/domain/healthevents"
	"pet-care-log/internal/domain/members"
	"pet-care-log/internal/domain/notifications"
	"pet-care-log/internal/domain/pets"
	"pet-care-log/internal/domain/users"
	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/httpjson"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Repos agrupa los repositorios por módulo. Los nil se completan in-memory.
type Repos struct {
	Users         users.Repository
	Pets          pets.Repository
	Members       members.Repository
	Events        healthevents.Repository
	Notifications notifications.Repository
}

func MemoryRepos() Repos {
	return Repos{
		Users:         mem.NewUserRepo(),
		Pets:          mem.NewPetRepo(),
		Members:       mem.NewMemberRepo(),
		Events:        mem.NewEventRepo(),
		Notifications: mem.NewNotificationRepo(),
	}
}

func SQLRepos(s *sqlstore.Store) Repos {
	return Repos{
		Users:         sqlstore.NewUsersRepo(s),
		Pets:          sqlstore.NewPetsRepo(s),
		Members:       sqlstore.NewMembersRepo(s),
		Events:        sqlstore.NewEventsRepo(s),
		Notifications: sqlstore.NewNotificationsRepo(s),
	}
}

func (r Repos) withDefaults() Repos {
	d := MemoryRepos()
	if r.Users == nil {
		r.Users = d.Users
	}
	if r.Pets == nil {
		r.Pets = d.Pets
	}
	if r.Members == nil {
		r.Members = d.Members
	}
	if r.Events == nil {
		r.Events = d.Events
	}
	if r.Notifications == nil {
		r.Notifications = d.Notifications
	}
	return r
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Logger       logger.Logger     // nil = sin logs
	RateLimiter  *middleware.RateLimiter
	Repos        Repos

	// Health verifica dependencias (p. ej. ping a la DB). nil = siempre ok.
	Health func(ctx context.Context) error
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	repos := opts.Repos.withDefaults()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLog(log))
	if opts.RateLimiter != nil {
		r.Use(middleware.RateLimit(opts.RateLimiter))
	}

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if opts.Health != nil {
			if err := opts.Health(req.Context()); err != nil {
				httpjson.WriteError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Services por módulo
	usersSvc := users.NewService(repos.Users)
	membersSvc := members.NewService(repos.Members)
	petsSvc := pets.NewService(repos.Pets, membersSvc)
	eventsSvc := healthevents.NewService(repos.Events, membersSvc)
	notificationsSvc := notifications.NewService(repos.Notifications)

	// Rutas por módulo (todas requieren identidad)
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireUser)

		users.RegisterRoutes(pr, usersSvc)
		pets.RegisterRoutes(pr, petsSvc)
		members.RegisterRoutes(pr, membersSvc)
		healthevents.RegisterRoutes(pr, eventsSvc)
		notifications.RegisterRoutes(pr, notificationsSvc)
	})

	return r
}
