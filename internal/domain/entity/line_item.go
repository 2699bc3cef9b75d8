package entity

import "time"

// LineKey identidad de consolidación de una línea: producto, lote y ubicación.
// La comparación es exacta (mayúsculas y espacios cuentan).
type LineKey struct {
	ProductName string
	Lot         string
	Location    string
}

// LineItem cantidad reservada de una fila de inventario dentro de la solicitud en curso.
type LineItem struct {
	ProductName        string
	Code               string
	Lot                string
	Location           string
	Warehouse          string
	Expiry             *time.Time
	Quantity           int // siempre > 0
	StockAtReservation int // stock de la fila antes de la primera reserva
	RowIndex           int // fila de origen; no es propiedad de la línea
}

// Key devuelve la clave de consolidación de la línea.
func (l LineItem) Key() LineKey {
	return LineKey{ProductName: l.ProductName, Lot: l.Lot, Location: l.Location}
}

// KeyOf devuelve la clave de consolidación que tendría una línea creada desde la fila.
func KeyOf(r InventoryRow) LineKey {
	return LineKey{ProductName: r.ProductName, Lot: r.Lot, Location: r.Location}
}
