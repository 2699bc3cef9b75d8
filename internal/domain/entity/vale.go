package entity

import "time"

// ValeHeader datos de cabecera que necesita el renderizador del vale.
type ValeHeader struct {
	Title     string
	Number    int // 0 = sin número asignado
	Requester string
	Preparer  string
	EmittedAt time.Time
}

// PaddedNumber devuelve el correlativo con tres dígitos ("007") o "" si no hay número.
func (h ValeHeader) PaddedNumber() string {
	return PadNumber(h.Number)
}

// UnifiedLine línea consolidada de varios vales (unificación de historial).
type UnifiedLine struct {
	Origins     []string
	ProductName string
	Lot         string
	Location    string
	Expiry      string
	Quantity    int
}
