package notifications

import (
	"context"
	"errors"
	"sync"
	"time"

	"pet-care-log/internal/domain/users"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/ports/mail"
)

// SettingsReader es lo único que el scheduler necesita del repositorio.
type SettingsReader interface {
	ListEnabled(ctx context.Context) ([]Setting, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id string) (users.User, error)
}

type SchedulerDeps struct {
	Settings SettingsReader
	Users    UserLookup
	Sender   mail.Sender
	Logger   logger.Logger
	// Location define el reloj de pared contra el que se comparan los HH:MM.
	// nil = time.Local.
	Location *time.Location
	Now      func() time.Time
}

// TickReport resume una pasada del scheduler.
type TickReport struct {
	Minute       string
	Matched      int
	Sent         int
	Failed       int
	SkippedUsers int
}

// Scheduler envía los recordatorios cuyo HH:MM coincide con el minuto actual.
// Un minuto sin tick (proceso caído o atrasado) se pierde, no hay backfill.
type Scheduler struct {
	settings SettingsReader
	users    UserLookup
	sender   mail.Sender
	log      logger.Logger
	loc      *time.Location
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(d SchedulerDeps) *Scheduler {
	s := &Scheduler{
		settings: d.Settings,
		users:    d.Users,
		sender:   d.Sender,
		log:      d.Logger,
		loc:      d.Location,
		now:      d.Now,
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.log = s.log.With(map[string]any{"component": "notification_scheduler"})
	return s
}

// Start lanza el loop en background. Llamar Start dos veces sin Stop no hace nada.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	done := s.done

	go func() {
		defer close(done)
		s.log.Info("scheduler started", map[string]any{"timezone": s.loc.String()})

		var last time.Time
		for {
			now := s.now()
			target := nextMinute(now, last)
			timer := time.NewTimer(target.Sub(now))
			select {
			case <-ctx.Done():
				timer.Stop()
				s.log.Info("scheduler stopped", nil)
				return
			case <-timer.C:
				last = target
				// Minuto perdido (proceso suspendido, reloj adelantado): no hay backfill.
				if late := s.now().Sub(target); late >= time.Minute {
					s.log.Warn("scheduler tick skipped", map[string]any{"minute": target.In(s.loc).Format("15:04"), "late": late.String()})
					continue
				}
				// El tick usa el minuto programado, no el reloj de pared
				// al despertar (puede haber retrocedido).
				s.Tick(ctx, target)
			}
		}
	}()
}

// Stop cancela el loop y espera a que termine el tick en curso.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Tick ejecuta una pasada para el minuto de now. No es idempotente: dos llamadas
// con el mismo minuto envían dos veces.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) TickReport {
	rep := TickReport{Minute: now.In(s.loc).Format("15:04")}

	enabled, err := s.settings.ListEnabled(ctx)
	if err != nil {
		s.log.Error("list enabled settings failed", map[string]any{"minute": rep.Minute, "error": err.Error()})
		return rep
	}

	due, order := MatchDue(enabled, rep.Minute)
	for _, userID := range order {
		matched := due[userID]
		rep.Matched += len(matched)

		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			rep.SkippedUsers++
			if !errors.Is(err, users.ErrNotFound) {
				s.log.Warn("user lookup failed", map[string]any{"user_id": userID, "error": err.Error()})
			}
			continue
		}

		for _, st := range matched {
			msg := Render(st.Type)
			msg.To = u.Email

			if err := s.sender.Send(ctx, msg); err != nil {
				rep.Failed++
				s.log.Error("notification dispatch failed", map[string]any{
					"user_id":    userID,
					"setting_id": st.ID,
					"type":       string(st.Type),
					"error":      err.Error(),
				})
				continue
			}
			rep.Sent++
		}
	}

	if rep.Matched > 0 {
		s.log.Info("scheduler tick", map[string]any{
			"minute":        rep.Minute,
			"matched":       rep.Matched,
			"sent":          rep.Sent,
			"failed":        rep.Failed,
			"skipped_users": rep.SkippedUsers,
		})
	}
	return rep
}

// MatchDue agrupa por usuario los settings habilitados que contienen hhmm.
// order conserva el orden de primera aparición de cada usuario.
func MatchDue(settings []Setting, hhmm string) (due map[string][]Setting, order []string) {
	due = map[string][]Setting{}
	for _, st := range settings {
		if !st.Enabled || !st.HasTime(hhmm) {
			continue
		}
		if _, ok := due[st.UserID]; !ok {
			order = append(order, st.UserID)
		}
		due[st.UserID] = append(due[st.UserID], st)
	}
	return due, order
}

// nextMinute devuelve el próximo borde de minuto posterior a now y a last,
// así un minuto ya despachado no se repite si el reloj retrocede.
func nextMinute(now, last time.Time) time.Time {
	next := now.Truncate(time.Minute).Add(time.Minute)
	if !last.IsZero() && !next.After(last) {
		next = last.Add(time.Minute)
	}
	return next
}
