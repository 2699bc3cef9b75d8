// Package pdf genera los documentos del flujo de vales con Maroto v2.
//
// Layout del vale (carta):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO                                   │  N° 007          │
//	│  Fecha / Hora de emisión                                     │
//	│  Solicitante / Usuario de bodega                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Lote | Ubicación | Vencimiento | Cantidad │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: Entregado por          Recibido por                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/vale-consumo/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// DefaultMargin margen por defecto en milímetros.
const DefaultMargin = 18

// ── Renderer ──────────────────────────────────────────────────────────────────

// ValeRenderer arma los PDF de vale, vale unificado y listado de solicitudes.
type ValeRenderer struct {
	margin float64
}

// NewValeRenderer construye el renderizador. margin <= 0 usa DefaultMargin.
func NewValeRenderer(margin float64) *ValeRenderer {
	if margin <= 0 {
		margin = DefaultMargin
	}
	return &ValeRenderer{margin: margin}
}

func (r *ValeRenderer) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(r.margin).WithRightMargin(r.margin).
		WithTopMargin(r.margin).WithBottomMargin(r.margin).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(title, true).
		Build()
	return maroto.New(cfg)
}

// RenderVale genera el vale de consumo y devuelve sus bytes.
func (r *ValeRenderer) RenderVale(h entity.ValeHeader, items []entity.SidecarItem) ([]byte, error) {
	m := r.newDocument(h.Title)

	m.AddRows(titleRow(h.Title, h.PaddedNumber()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metadataRows(h)...)
	m.AddRows(row.New(4))

	m.AddRows(sectionRow("Detalle de Productos Retirados:"))
	m.AddRows(tableHeader(valeColumns))
	for _, it := range items {
		m.AddRows(tableRow(valeColumns, []string{
			it.ProductName, it.Lot, it.Location, it.Expiry, strconv.Itoa(it.Quantity),
		}))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(row.New(20))
	m.AddRows(signatureRows()...)

	return generate(m)
}

// RenderUnified genera el vale consolidado de varias solicitudes.
func (r *ValeRenderer) RenderUnified(title string, lines []entity.UnifiedLine, emittedAt time.Time) ([]byte, error) {
	m := r.newDocument(title)

	m.AddRows(titleRow(title, ""))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(keyValueRow("Fecha de Emisión:", emittedAt.Format("02-01-2006")))
	m.AddRows(keyValueRow("Hora de Emisión:", emittedAt.Format("15:04:05")))
	m.AddRows(row.New(4))

	m.AddRows(sectionRow("Detalle consolidado:"))
	m.AddRows(tableHeader(unifiedColumns))
	for _, l := range lines {
		m.AddRows(tableRow(unifiedColumns, []string{
			strings.Join(l.Origins, "+"), l.ProductName, l.Lot, l.Location, l.Expiry, strconv.Itoa(l.Quantity),
		}))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(row.New(20))
	m.AddRows(signatureRows()...)

	return generate(m)
}

// RenderList genera el listado de solicitudes del índice.
func (r *ValeRenderer) RenderList(title string, entries []entity.RegistryEntry, at time.Time) ([]byte, error) {
	m := r.newDocument(title)

	m.AddRows(titleRow(title, ""))
	m.AddRows(keyValueRow("Generado:", at.Format("02-01-2006 15:04:05")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeader(listColumns))
	for _, e := range entries {
		m.AddRows(tableRow(listColumns, []string{
			entity.PadNumber(e.Number), string(e.Status), e.CreatedAt, e.Document, strconv.Itoa(e.ItemCount),
		}))
	}
	m.AddRows(row.New(4))
	m.AddRows(keyValueRow("Total:", strconv.Itoa(len(entries))))

	return generate(m)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

type column struct {
	label string
	size  int
	align align.Type
}

var valeColumns = []column{
	{"Producto", 4, align.Left},
	{"Lote", 2, align.Center},
	{"Ubicación", 2, align.Left},
	{"Vencimiento", 2, align.Center},
	{"Cantidad", 2, align.Center},
}

var unifiedColumns = []column{
	{"Origen", 2, align.Left},
	{"Producto", 3, align.Left},
	{"Lote", 2, align.Center},
	{"Ubicación", 2, align.Left},
	{"Vencimiento", 2, align.Center},
	{"Cant.", 1, align.Center},
}

var listColumns = []column{
	{"N°", 1, align.Center},
	{"Estado", 2, align.Center},
	{"Fecha", 3, align.Center},
	{"Documento", 5, align.Left},
	{"Ítems", 1, align.Center},
}

// titleRow: título (izq) y número correlativo (der) si existe.
func titleRow(title, number string) core.Row {
	left := col.New(9).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 15, Color: colorPrimary, Top: 2,
	}))
	right := col.New(3)
	if number != "" {
		right.Add(text.New("N° "+number, props.Text{
			Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 2,
		}))
	}
	return row.New(14).Add(left, right)
}

// metadataRows: fecha, hora, solicitante y usuario de bodega.
func metadataRows(h entity.ValeHeader) []core.Row {
	rows := []core.Row{
		keyValueRow("Fecha de Emisión:", h.EmittedAt.Format("02-01-2006")),
		keyValueRow("Hora de Emisión:", h.EmittedAt.Format("15:04:05")),
	}
	if h.Requester != "" {
		rows = append(rows, keyValueRow("Solicitante:", h.Requester))
	}
	if h.Preparer != "" {
		rows = append(rows, keyValueRow("Usuario de bodega:", h.Preparer))
	}
	return rows
}

func keyValueRow(label, value string) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1})),
		col.New(8).Add(text.New(nonEmpty(value, "—"), props.Text{Size: 10, Top: 1})),
	)
}

func sectionRow(label string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 10, Top: 2,
	})))
}

func tableHeader(cols []column) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		out = append(out, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(out...)
}

func tableRow(cols []column, values []string) core.Row {
	out := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		out = append(out, col.New(c.size).Add(text.New(v, props.Text{
			Size: 9, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(out...)
}

// signatureRows: líneas de firma "Entregado por" / "Recibido por".
func signatureRows() []core.Row {
	sig := func(label string) core.Col {
		return col.New(6).Add(
			text.New("________________________", props.Text{Align: align.Center, Color: colorGray}),
			text.New(label, props.Text{Style: fontstyle.Bold, Align: align.Center, Top: 6}),
		)
	}
	return []core.Row{
		row.New(14).Add(sig("Entregado por:"), sig("Recibido por:")),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
