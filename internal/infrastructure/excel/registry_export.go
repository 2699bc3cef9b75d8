package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/vale-consumo/internal/domain/entity"
)

const exportSheet = "Solicitudes"

var exportHeaders = []any{"number", "status", "created_at", "pdf", "json", "items_count"}

// RegistryExporter escribe listados del índice de vales en xlsx.
type RegistryExporter struct{}

// NewRegistryExporter construye el exportador.
func NewRegistryExporter() *RegistryExporter { return &RegistryExporter{} }

// ExportRegistry guarda entries en path, una fila por solicitud con encabezado.
func (RegistryExporter) ExportRegistry(path string, entries []entity.RegistryEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return fmt.Errorf("excel: encabezados: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(exportSheet, 1, 1, bold)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excel: celda fila %d: %w", i+2, err)
		}
		values := []any{e.Number, string(e.Status), e.CreatedAt, e.Document, e.Sidecar, e.ItemCount}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(exportSheet, "C", "C", 20)
	_ = f.SetColWidth(exportSheet, "D", "E", 40)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excel: guardar %s: %w", path, err)
	}
	return nil
}
