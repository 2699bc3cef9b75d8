// Package scheduler ejecuta tareas periódicas (reindexación del historial) con gocron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/jhoicas/vale-consumo/pkg/logger"
)

// Scheduler envuelve un gocron.Scheduler con el contexto de la aplicación.
type Scheduler struct {
	s   gocron.Scheduler
	ctx context.Context
	log *logger.Logger
}

// New crea el scheduler; ctx se pasa a cada ejecución de tarea.
func New(ctx context.Context, log *logger.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("scheduler: crear: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{s: s, ctx: ctx, log: log}, nil
}

// Every registra task cada interval. Una ejecución lenta no se solapa con la
// siguiente: se reprograma. immediately ejecuta también al iniciar.
func (s *Scheduler) Every(name string, interval time.Duration, immediately bool, task func(context.Context)) error {
	if interval <= 0 {
		return fmt.Errorf("scheduler: intervalo inválido para %s: %s", name, interval)
	}
	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if immediately {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}
	_, err := s.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task, s.ctx),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("scheduler: registrar %s: %w", name, err)
	}
	s.log.Info().Str("job", name).Dur("interval", interval).Msg("tarea programada")
	return nil
}

// Start inicia la ejecución de tareas.
func (s *Scheduler) Start() { s.s.Start() }

// Shutdown detiene el scheduler y espera las tareas en curso.
func (s *Scheduler) Shutdown() error {
	if err := s.s.Shutdown(); err != nil {
		return fmt.Errorf("scheduler: detener: %w", err)
	}
	return nil
}
