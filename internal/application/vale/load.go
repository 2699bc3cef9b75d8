package vale

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/vale-consumo/internal/application/dto"
	"github.com/jhoicas/vale-consumo/internal/domain"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
)

// Estados de la carga de inventario.
const (
	LoadStateIdle    = "idle"
	LoadStateLoading = "loading"
	LoadStateDone    = "done"
	LoadStateError   = "error"
)

// loadJobs estado de la carga en segundo plano. Sólo una a la vez.
type loadJobs struct {
	mu      sync.Mutex
	running bool
	status  dto.LoadStatusResponse
}

type loadEventKind int

const (
	loadProgress loadEventKind = iota
	loadDone
	loadFailed
)

// loadEvent mensaje del worker al consumidor.
type loadEvent struct {
	kind      loadEventKind
	processed int
	total     int
	message   string
	rows      []entity.InventoryRow
	err       error
}

// StartLoad inicia la lectura de la planilla en segundo plano y devuelve el id
// del trabajo. El inventario y la solicitud en curso se reemplazan al terminar.
func (s *ValeService) StartLoad(path string) (string, error) {
	if s.loader == nil {
		return "", fmt.Errorf("%w: lector de inventario no configurado", domain.ErrInvalidInput)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		path = s.DefaultInventoryPath()
	}
	if path == "" {
		return "", fmt.Errorf("%w: ruta de inventario requerida", domain.ErrInvalidInput)
	}

	s.jobs.mu.Lock()
	if s.jobs.running {
		s.jobs.mu.Unlock()
		return "", domain.ErrLoadInProgress
	}
	id := uuid.NewString()
	s.jobs.running = true
	s.jobs.status = dto.LoadStatusResponse{JobID: id, State: LoadStateLoading, File: path, Total: -1}
	s.jobs.mu.Unlock()

	events := make(chan loadEvent, 16)
	go s.runLoad(path, events)
	go s.consumeLoad(id, path, events)

	s.log.Info().Str("job", id).Str("file", path).Msg("carga de inventario iniciada")
	return id, nil
}

// runLoad worker: lee la planilla y publica progreso y resultado.
func (s *ValeService) runLoad(path string, events chan<- loadEvent) {
	defer close(events)
	progress := func(processed, total int, message string) {
		select {
		case events <- loadEvent{kind: loadProgress, processed: processed, total: total, message: message}:
		case <-s.ctx.Done():
		}
	}
	rows, err := s.loader.Load(s.ctx, path, s.opts.AreaFilter, progress)
	if err != nil {
		events <- loadEvent{kind: loadFailed, err: err}
		return
	}
	events <- loadEvent{kind: loadDone, rows: rows}
}

// consumeLoad aplica los eventos del worker sobre el estado del servicio.
func (s *ValeService) consumeLoad(id, path string, events <-chan loadEvent) {
	for ev := range events {
		switch ev.kind {
		case loadProgress:
			s.jobs.mu.Lock()
			s.jobs.status.Processed = ev.processed
			s.jobs.status.Total = ev.total
			s.jobs.status.Message = ev.message
			s.jobs.mu.Unlock()

		case loadDone:
			n := s.applyInventory(path, ev.rows)
			s.jobs.mu.Lock()
			s.jobs.running = false
			s.jobs.status.State = LoadStateDone
			s.jobs.status.Rows = n
			s.jobs.status.Processed = n
			s.jobs.status.Message = fmt.Sprintf("Inventario cargado: %d filas", n)
			s.jobs.mu.Unlock()

		case loadFailed:
			s.log.Error().Err(ev.err).Str("job", id).Str("file", path).Msg("fallo la carga de inventario")
			s.jobs.mu.Lock()
			s.jobs.running = false
			s.jobs.status.State = LoadStateError
			s.jobs.status.Error = ev.err.Error()
			s.jobs.status.Message = ""
			s.jobs.mu.Unlock()
		}
	}
}

// LoadStatus estado de la última carga.
func (s *ValeService) LoadStatus() dto.LoadStatusResponse {
	s.jobs.mu.Lock()
	defer s.jobs.mu.Unlock()
	return s.jobs.status
}

// Load lee la planilla de forma sincrónica (arranque y pruebas).
func (s *ValeService) Load(ctx context.Context, path string) (int, error) {
	if s.loader == nil {
		return 0, fmt.Errorf("%w: lector de inventario no configurado", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(path) == "" {
		path = s.DefaultInventoryPath()
	}
	rows, err := s.loader.Load(ctx, path, s.opts.AreaFilter, nil)
	if err != nil {
		return 0, err
	}
	n := s.applyInventory(path, rows)

	s.jobs.mu.Lock()
	if !s.jobs.running {
		s.jobs.status = dto.LoadStatusResponse{
			State:     LoadStateDone,
			File:      path,
			Processed: n,
			Total:     n,
			Rows:      n,
			Message:   fmt.Sprintf("Inventario cargado: %d filas", n),
		}
	}
	s.jobs.mu.Unlock()
	return n, nil
}

// applyInventory reemplaza el inventario y recuerda la carpeta de la planilla.
func (s *ValeService) applyInventory(path string, rows []entity.InventoryRow) int {
	s.mu.Lock()
	s.ledger.Load(rows)
	n := s.ledger.Len()
	s.mu.Unlock()

	if s.settings != nil {
		if abs, err := filepath.Abs(path); err == nil {
			s.settings.SetLastInventoryDir(filepath.Dir(abs))
		}
	}
	s.log.Info().Str("file", path).Int("rows", n).Msg("inventario cargado")
	return n
}

// DefaultInventoryPath planilla configurada. Si existe una con el mismo nombre
// en la última carpeta usada, se prefiere esa.
func (s *ValeService) DefaultInventoryPath() string {
	name := s.opts.InventoryFile
	if name == "" {
		return ""
	}
	if s.settings != nil {
		if dir, ok := s.settings.LastInventoryDir(); ok {
			candidate := filepath.Join(dir, filepath.Base(name))
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
	}
	return name
}
