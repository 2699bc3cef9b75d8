package entity

import "time"

// ExpiryLayout formato de fecha de vencimiento usado en vistas, PDF y sidecars.
const ExpiryLayout = "2006-01-02"

// InventoryRow representa un SKU en una ubicación/lote dentro de la planilla cargada.
// Index es estable durante la vida del snapshot: el ledger indexa el stock por él.
type InventoryRow struct {
	Index             int
	Area              string
	Family            string
	Subfamily         string
	Code              string
	ProductName       string
	Unit              string
	BusinessUnit      string
	Warehouse         string
	Location          string
	SerialNumber      string
	Lot               string
	Expiry            *time.Time // nil = sin vencimiento o no interpretable
	Incoming          int        // "Por llegar"
	ReservedElsewhere int        // "Reserva"
	Stock             int        // disponible, nunca negativo
}

// ExpiryString devuelve el vencimiento como YYYY-MM-DD o "" si no tiene.
func (r InventoryRow) ExpiryString() string {
	return FormatExpiry(r.Expiry)
}

// FormatExpiry formatea un vencimiento opcional.
func FormatExpiry(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(ExpiryLayout)
}
