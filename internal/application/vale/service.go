// Package vale orquesta el flujo completo de una solicitud de consumo: carga del
// inventario, armado de la solicitud contra el stock, emisión del vale y
// mantenimiento del índice de solicitudes.
//
// ValeService es el único escritor del ledger: cada operación toma su mutex.
package vale

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jhoicas/vale-consumo/internal/application/dto"
	"github.com/jhoicas/vale-consumo/internal/domain"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
	"github.com/jhoicas/vale-consumo/internal/domain/inventory"
	"github.com/jhoicas/vale-consumo/internal/domain/repository"
	"github.com/jhoicas/vale-consumo/pkg/logger"
)

// Options valores de configuración del flujo.
type Options struct {
	Title         string // título del PDF
	AreaFilter    string // "" = sin filtro
	InventoryFile string // planilla por defecto
	DefaultCopies int

	// ExternalTimeout tope de impresión y archivo remoto al generar; corren con
	// el servicio bloqueado. 0 usa DefaultExternalTimeout.
	ExternalTimeout time.Duration
}

// DefaultExternalTimeout tope por omisión de las llamadas externas de Generate.
const DefaultExternalTimeout = 30 * time.Second

// Deps dependencias del servicio. Merger, Printer, Archiver, Exporter y
// Settings son opcionales.
type Deps struct {
	Registry repository.ValeRegistry
	Loader   InventoryLoader
	Renderer DocumentRenderer
	Merger   DocumentMerger
	Printer  Printer
	Archiver Archiver
	Exporter RegistryExporter
	Settings SettingsStore
	Logger   *logger.Logger
	Clock    func() time.Time
}

// ValeService casos de uso de la solicitud de consumo.
type ValeService struct {
	mu       sync.Mutex
	ledger   *inventory.Ledger
	registry repository.ValeRegistry
	loader   InventoryLoader
	renderer DocumentRenderer
	merger   DocumentMerger
	printer  Printer
	archiver Archiver
	exporter RegistryExporter
	settings SettingsStore
	opts     Options
	now      func() time.Time
	log      *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	jobs   loadJobs
}

// NewValeService construye el servicio con un inventario vacío.
func NewValeService(deps Deps, opts Options) *ValeService {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if opts.DefaultCopies < 1 {
		opts.DefaultCopies = 1
	}
	if opts.ExternalTimeout <= 0 {
		opts.ExternalTimeout = DefaultExternalTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ValeService{
		ledger:   inventory.NewLedger(),
		registry: deps.Registry,
		loader:   deps.Loader,
		renderer: deps.Renderer,
		merger:   deps.Merger,
		printer:  deps.Printer,
		archiver: deps.Archiver,
		exporter: deps.Exporter,
		settings: deps.Settings,
		opts:     opts,
		now:      deps.Clock,
		log:      deps.Logger.Component("vale"),
		ctx:      ctx,
		cancel:   cancel,
		jobs:     loadJobs{status: dto.LoadStatusResponse{State: LoadStateIdle, Total: -1}},
	}
}

// Close cancela una carga en curso.
func (s *ValeService) Close() {
	s.cancel()
}

// ── Inventario ────────────────────────────────────────────────────────────────

// Inventory devuelve las filas que cumplen el filtro con su stock actual.
func (s *ValeService) Inventory(q dto.InventoryQuery) *dto.InventoryListResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	opts := inventory.FilterOptions{
		Product:           q.Product,
		Lot:               q.Lot,
		Location:          q.Location,
		ExpiryFrom:        q.ExpiryFrom,
		ExpiryTo:          q.ExpiryTo,
		Subfamily:         q.Subfamily,
		OnlyWithStock:     q.OnlyWithStock,
		ExcludedLocations: q.Exclude,
		Today:             today,
	}
	rows := opts.Apply(s.ledger.Rows())
	states := inventory.ExpiryStates(rows, today)

	out := make([]dto.InventoryRowResponse, 0, len(rows))
	for _, r := range rows {
		initial, _ := s.ledger.InitialStock(r.Index)
		out = append(out, toInventoryRowResponse(r, initial, states[r.Index]))
	}
	return &dto.InventoryListResponse{Rows: out, Count: len(out), Loaded: s.ledger.Len()}
}

// Subfamilies valores distintos de subfamilia del inventario cargado.
func (s *ValeService) Subfamilies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return inventory.Subfamilies(s.ledger.Rows())
}

// Locations valores distintos de ubicación del inventario cargado.
func (s *ValeService) Locations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return inventory.Locations(s.ledger.Rows())
}

// ── Solicitud en curso ────────────────────────────────────────────────────────

// Current devuelve la solicitud en curso.
func (s *ValeService) Current() *dto.ValeResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return toValeResponse(s.ledger.Lines())
}

// Reserve agrega quantity de la fila rowIndex a la solicitud.
func (s *ValeService) Reserve(rowIndex, quantity int) (*dto.LineItemResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger.Len() == 0 {
		return nil, domain.ErrNoInventory
	}
	item, err := s.ledger.Reserve(rowIndex, quantity)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("row", rowIndex).Int("qty", quantity).Str("product", item.ProductName).Msg("producto agregado a la solicitud")
	return s.lineResponse(item), nil
}

// UpdateQuantity fija la cantidad de la línea lineIndex.
func (s *ValeService) UpdateQuantity(lineIndex, quantity int) (*dto.LineItemResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := s.ledger.UpdateQuantity(lineIndex, quantity)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("line", lineIndex).Int("qty", quantity).Msg("cantidad actualizada")
	resp := toLineItemResponse(lineIndex, item)
	return &resp, nil
}

// Release quita la línea lineIndex y devuelve su stock.
func (s *ValeService) Release(lineIndex int) (*dto.LineItemResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := s.ledger.Release(lineIndex)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("line", lineIndex).Int("qty", item.Quantity).Msg("item removido de la solicitud")
	resp := toLineItemResponse(lineIndex, item)
	return &resp, nil
}

// Reset vacía la solicitud y restaura el stock.
func (s *ValeService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Reset()
	s.log.Info().Msg("solicitud en curso limpiada (se restauró stock)")
}

// lineResponse ubica la línea por clave para informar su índice actual.
func (s *ValeService) lineResponse(item entity.LineItem) *dto.LineItemResponse {
	idx := 0
	for i, l := range s.ledger.Lines() {
		if l.Key() == item.Key() {
			idx = i
			break
		}
	}
	resp := toLineItemResponse(idx, item)
	return &resp
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *ValeService) historyDir() string {
	return s.registry.Dir()
}

func (s *ValeService) ensureHistoryDir() error {
	if err := os.MkdirAll(s.historyDir(), 0o755); err != nil {
		return fmt.Errorf("crear carpeta de historial: %w", err)
	}
	return nil
}

func (s *ValeService) historyPath(name string) string {
	return filepath.Join(s.historyDir(), name)
}

func persistenceMessage(pr repository.PersistenceResult) string {
	if pr.OK() {
		return ""
	}
	return pr.Err.Error()
}

func (s *ValeService) warnPersistence(op string, pr repository.PersistenceResult) {
	if !pr.OK() {
		s.log.Warn().Err(pr.Err).Str("op", op).Msg("no se pudo guardar el índice de vales")
	}
}
