package vale

import (
	"context"
	"time"

	"github.com/jhoicas/vale-consumo/internal/domain/entity"
)

// InventoryLoader lee la planilla de stock. progress puede ser nil.
type InventoryLoader interface {
	Load(ctx context.Context, path, areaFilter string, progress func(processed, total int, message string)) ([]entity.InventoryRow, error)
}

// DocumentRenderer genera los PDF del flujo.
type DocumentRenderer interface {
	RenderVale(h entity.ValeHeader, items []entity.SidecarItem) ([]byte, error)
	RenderUnified(title string, lines []entity.UnifiedLine, emittedAt time.Time) ([]byte, error)
	RenderList(title string, entries []entity.RegistryEntry, at time.Time) ([]byte, error)
}

// DocumentMerger concatena PDFs completos.
type DocumentMerger interface {
	MergeFiles(inputs []string, output string) error
}

// Printer envía un PDF a la impresora.
type Printer interface {
	Print(ctx context.Context, path string, copies int) error
}

// Archiver copia los archivos de un vale emitido a un almacenamiento externo.
type Archiver interface {
	Archive(ctx context.Context, prefix string, files ...string) error
}

// RegistryExporter exporta entradas del índice a planilla.
type RegistryExporter interface {
	ExportRegistry(path string, entries []entity.RegistryEntry) error
}

// SettingsStore preferencias del operador.
type SettingsStore interface {
	LastInventoryDir() (string, bool)
	SetLastInventoryDir(dir string)
}
