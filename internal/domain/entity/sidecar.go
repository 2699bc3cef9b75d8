package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sidecar datos estructurados que acompañan a cada PDF emitido (mismo nombre base, extensión .json).
// Las claves JSON se mantienen para leer historiales ya existentes.
type Sidecar struct {
	Filename     string        `json:"filename"`
	EmissionTime string        `json:"emission_time"` // TimestampLayout
	Requester    string        `json:"solicitante"`
	Preparer     string        `json:"usuario_bodega"`
	Number       string        `json:"numero_correlativo"` // "007" o "" sin número
	Items        []SidecarItem `json:"items"`
}

// SidecarItem línea de la solicitud tal como se emitió.
type SidecarItem struct {
	ProductName string `json:"Producto"`
	Code        string `json:"Codigo,omitempty"`
	Lot         string `json:"Lote"`
	Expiry      string `json:"Vencimiento"`
	Location    string `json:"Ubicacion"`
	Warehouse   string `json:"Bodega,omitempty"`
	Quantity    int    `json:"Cantidad"`
	RowIndex    int    `json:"Stock_Original_Index"`
}

// SidecarItemFrom convierte una línea de la solicitud.
func SidecarItemFrom(l LineItem) SidecarItem {
	return SidecarItem{
		ProductName: l.ProductName,
		Code:        l.Code,
		Lot:         l.Lot,
		Expiry:      FormatExpiry(l.Expiry),
		Location:    l.Location,
		Warehouse:   l.Warehouse,
		Quantity:    l.Quantity,
		RowIndex:    l.RowIndex,
	}
}

// UnmarshalJSON acepta los valores tal como los escribían las versiones
// anteriores de la herramienta: Lote, Codigo o Vencimiento pueden venir como
// número o null, y Cantidad como número decimal o texto.
func (it *SidecarItem) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	qty, err := intOf(raw["Cantidad"])
	if err != nil {
		return fmt.Errorf("Cantidad: %w", err)
	}
	idx, err := intOf(raw["Stock_Original_Index"])
	if err != nil {
		return fmt.Errorf("Stock_Original_Index: %w", err)
	}
	*it = SidecarItem{
		ProductName: textOf(raw["Producto"]),
		Code:        textOf(raw["Codigo"]),
		Lot:         textOf(raw["Lote"]),
		Expiry:      textOf(raw["Vencimiento"]),
		Location:    textOf(raw["Ubicacion"]),
		Warehouse:   textOf(raw["Bodega"]),
		Quantity:    qty,
		RowIndex:    idx,
	}
	return nil
}

func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func intOf(v any) (int, error) {
	var s string
	switch t := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
	default:
		return 0, fmt.Errorf("valor no numérico %v", v)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("valor no numérico %q", s)
	}
	return int(f), nil
}
