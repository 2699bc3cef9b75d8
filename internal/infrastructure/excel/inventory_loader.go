// Package excel lee la planilla de stock físico y exporta listados de solicitudes a xlsx.
package excel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/vale-consumo/internal/domain"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
	"github.com/jhoicas/vale-consumo/pkg/logger"
)

// DefaultChunkSize filas entre avisos de progreso.
const DefaultChunkSize = 2000

const (
	msgReading    = "Leyendo archivo..."
	msgProcessing = "Procesando datos..."
)

// ProgressFunc recibe filas procesadas, total estimado (-1 si se desconoce) y un mensaje.
type ProgressFunc = func(processed, total int, message string)

// expiryLayouts formatos de fecha aceptados como texto; día primero cuando es ambiguo.
var expiryLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02-01-2006",
	"02/01/2006",
	"2/1/2006",
	"2006/01/02",
	"02-01-2006 15:04:05",
	"02/01/2006 15:04:05",
}

// InventoryLoader lee la hoja activa de un xlsx en streaming.
type InventoryLoader struct {
	chunkSize int
	log       *logger.Logger
}

// NewInventoryLoader construye el lector. chunkSize <= 0 usa DefaultChunkSize.
func NewInventoryLoader(log *logger.Logger, chunkSize int) *InventoryLoader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryLoader{chunkSize: chunkSize, log: log}
}

// Load lee el archivo, normaliza columnas y aplica el filtro de área.
// Las filas conservadas se numeran desde 0 en el orden de la planilla.
func (l *InventoryLoader) Load(ctx context.Context, path, areaFilter string, progress ProgressFunc) ([]entity.InventoryRow, error) {
	if progress == nil {
		progress = func(int, int, string) {}
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("excel: %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("excel: %s: %w", path, err)
	}

	l.log.Info().Str("file", path).Msg("cargando inventario")

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	total := dataRowCount(f, sheet)
	progress(0, total, msgReading)

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("excel: leer hoja %q: %w", sheet, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("excel: %w: la hoja %q está vacía", domain.ErrInvalidInput, sheet)
	}
	headers, err := rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("excel: leer encabezados: %w", err)
	}
	cols := mapColumns(headers)
	if missing := missingColumns(cols); len(missing) > 0 {
		return nil, fmt.Errorf("excel: %w: faltan columnas requeridas: %s",
			domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	_, hasArea := cols[colArea]
	applyArea := areaFilter != "" && hasArea

	out := make([]entity.InventoryRow, 0, max(total, 0))
	processed := 0
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", processed+2, err)
		}
		processed++
		if processed%l.chunkSize == 0 {
			progress(processed, total, msgReading)
		}
		if isBlank(cells) {
			continue
		}
		rec := record{cells: cells, cols: cols}
		if applyArea && rec.str(colArea) != areaFilter {
			continue
		}
		out = append(out, rec.toRow(len(out)))
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("excel: recorrer filas: %w", err)
	}

	if total < 0 {
		total = processed
	}
	progress(total, total, msgProcessing)

	area := areaFilter
	if area == "" {
		area = "N/A"
	}
	l.log.Info().Int("rows", len(out)).Str("area", area).Msg("inventario cargado")
	return out, nil
}

// dataRowCount filas de datos según la dimensión de la hoja, o -1.
func dataRowCount(f *excelize.File, sheet string) int {
	dim, err := f.GetSheetDimension(sheet)
	if err != nil || dim == "" {
		return -1
	}
	parts := strings.Split(dim, ":")
	last := parts[len(parts)-1]
	_, rowNum, err := excelize.CellNameToCoordinates(last)
	if err != nil {
		return -1
	}
	if rowNum <= 1 {
		return 0
	}
	return rowNum - 1
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ── record ────────────────────────────────────────────────────────────────────

type record struct {
	cells []string
	cols  map[string]int
}

func (r record) raw(col string) string {
	idx, ok := r.cols[col]
	if !ok || idx >= len(r.cells) {
		return ""
	}
	return r.cells[idx]
}

func (r record) str(col string) string {
	return strings.TrimSpace(r.raw(col))
}

func (r record) toRow(index int) entity.InventoryRow {
	return entity.InventoryRow{
		Index:             index,
		Area:              r.str(colArea),
		Family:            r.str(colFamily),
		Subfamily:         r.str(colSubfamily),
		Code:              r.str(colCode),
		ProductName:       r.raw(colProduct),
		Unit:              r.str(colUnit),
		BusinessUnit:      r.str(colBusinessUnit),
		Warehouse:         r.str(colWarehouse),
		Location:          r.raw(colLocation),
		SerialNumber:      r.str(colSerial),
		Lot:               r.raw(colLot),
		Expiry:            ParseExpiry(r.raw(colExpiry)),
		Incoming:          ParseQuantity(r.raw(colIncoming)),
		ReservedElsewhere: ParseQuantity(r.raw(colReserved)),
		Stock:             ParseQuantity(r.raw(colAvailable)),
	}
}

// ParseQuantity interpreta una celda de cantidad: vacío → 0, negativos → 0,
// decimales truncados. Acepta "12", "12.0", "1.234,00" y "1,5".
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	if d.IsNegative() {
		return 0
	}
	return int(d.Truncate(0).IntPart())
}

// ParseExpiry interpreta una fecha de vencimiento: número de serie de Excel o
// texto en alguno de expiryLayouts. Devuelve nil si no es interpretable.
func ParseExpiry(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 || serial > 2958465 {
			return nil
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil
		}
		return dayOf(t)
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dayOf(t)
		}
	}
	return nil
}

func dayOf(t time.Time) *time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}
