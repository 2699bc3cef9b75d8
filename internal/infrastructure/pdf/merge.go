package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Merger concatena PDFs completos cuando no hay datos estructurados para consolidar.
type Merger struct{}

// NewMerger construye el concatenador.
func NewMerger() *Merger { return &Merger{} }

// MergeFiles escribe en output las páginas de inputs en orden.
func (Merger) MergeFiles(inputs []string, output string) error {
	if len(inputs) < 2 {
		return fmt.Errorf("pdf: se necesitan al menos dos documentos para unificar (hay %d)", len(inputs))
	}
	if err := api.MergeCreateFile(inputs, output, false, nil); err != nil {
		return fmt.Errorf("pdf: unificar documentos: %w", err)
	}
	return nil
}
