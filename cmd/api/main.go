package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"pet-care-log/internal/adapters/auth/introspect"
	"pet-care-log/internal/adapters/auth/jwt"
	"pet-care-log/internal/adapters/mail/logmail"
	"pet-care-log/internal/adapters/mail/postmark"
	"pet-care-log/internal/adapters/storage/sqlstore"
	"pet-care-log/internal/domain/notifications"
	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/config"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/ports/auth"
	"pet-care-log/internal/ports/mail"
	"pet-care-log/internal/router"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// @title Pet Care Log API
// @version 1.0
// @description Mascotas, miembros, eventos de salud con recurrencia y recordatorios por email.
// @BasePath /
func main() {
	_ = godotenv.Load()

	fx.New(
		fx.NopLogger,
		fx.Provide(
			config.Load,
			newLogger,
			newStore,
			newRepos,
			newVerifier,
			newMailSender,
			newHandler,
			newScheduler,
		),
		fx.Invoke(
			startServer,
			startScheduler,
		),
	).Run()
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App,
	})
}

// newStore devuelve nil con driver memory.
func newStore(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (*sqlstore.Store, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn("using in-memory storage, data is lost on restart", nil)
		return nil, nil
	}

	s, err := sqlstore.Open(context.Background(), cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	log.Info("database ready", map[string]any{"driver": cfg.DB.Driver})

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return s.Close()
		},
	})
	return s, nil
}

func newRepos(s *sqlstore.Store) router.Repos {
	if s == nil {
		return router.MemoryRepos()
	}
	return router.SQLRepos(s)
}

func newVerifier(cfg *config.Config) (auth.AuthVerifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthJWT:
		return jwt.NewVerifier(cfg.Auth.JWTSecret)
	case config.AuthIntrospect:
		return introspect.NewVerifier(introspect.Config{
			BaseURL: cfg.Auth.IntrospectURL,
			APIKey:  cfg.Auth.IntrospectAPIKey,
		})
	default:
		// dev: X-Debug-User-ID
		return nil, nil
	}
}

func newMailSender(cfg *config.Config, log logger.Logger) (mail.Sender, error) {
	if cfg.Mail.Provider != config.MailPostmark {
		return logmail.New(log), nil
	}

	var opts []postmark.Option
	if cfg.Mail.APIURL != "" {
		opts = append(opts, postmark.WithAPIURL(cfg.Mail.APIURL))
	}
	return postmark.NewClient(cfg.Mail.Token, cfg.Mail.From, opts...)
}

func newHandler(cfg *config.Config, log logger.Logger, verifier auth.AuthVerifier, repos router.Repos, s *sqlstore.Store) http.Handler {
	opts := router.Options{
		AuthVerifier: verifier,
		Logger:       log,
		Repos:        repos,
	}
	if cfg.RateLimit.RPS > 0 {
		opts.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	if s != nil {
		opts.Health = s.PingContext
	}
	return router.NewRouter(opts)
}

func newScheduler(cfg *config.Config, log logger.Logger, repos router.Repos, sender mail.Sender) (*notifications.Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return notifications.NewScheduler(notifications.SchedulerDeps{
		Settings: repos.Notifications,
		Users:    repos.Users,
		Sender:   sender,
		Logger:   log,
		Location: loc,
	}), nil
}

func startServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config, log logger.Logger, h http.Handler) {
	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.HTTP.Port),
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting server", map[string]any{"addr": srv.Addr, "auth": cfg.Auth.Mode, "db": cfg.DB.Driver})
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server error", map[string]any{"error": err.Error()})
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping server", nil)
			return srv.Shutdown(ctx)
		},
	})
}

func startScheduler(lc fx.Lifecycle, cfg *config.Config, log logger.Logger, s *notifications.Scheduler) {
	if !cfg.Scheduler.Enabled {
		log.Info("notification scheduler disabled", nil)
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.Start(context.Background())
			return nil
		},
		OnStop: func(context.Context) error {
			s.Stop()
			return nil
		},
	})
}
