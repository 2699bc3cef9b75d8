package inventory

import (
	"fmt"

	"github.com/jhoicas/vale-consumo/internal/domain"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
)

// Ledger mantiene el stock disponible por fila y la solicitud en curso.
//
// Para cada fila se cumple entre operaciones:
//
//	Stock(fila) + Σ cantidad reservada sobre la fila == stock al último Load
//
// Finalize rompe la igualdad a propósito: lo reservado pasa a ser un retiro.
// Ledger no es seguro para uso concurrente; el llamador serializa el acceso.
type Ledger struct {
	rows    map[int]*entity.InventoryRow
	order   []int
	initial map[int]int
	lines   []line
}

// line guarda de qué filas salió cada unidad de una línea consolidada.
// Normalmente hay una sola asignación (la fila de RowIndex); hay varias cuando
// dos filas distintas comparten producto, lote y ubicación.
type line struct {
	item   entity.LineItem
	allocs []allocation
}

type allocation struct {
	row int
	qty int
}

// NewLedger construye un ledger vacío.
func NewLedger() *Ledger {
	return &Ledger{
		rows:    make(map[int]*entity.InventoryRow),
		initial: make(map[int]int),
	}
}

// Load reemplaza el inventario completo y descarta la solicitud en curso sin
// devolver stock (las filas anteriores dejan de existir).
func (l *Ledger) Load(rows []entity.InventoryRow) {
	l.rows = make(map[int]*entity.InventoryRow, len(rows))
	l.initial = make(map[int]int, len(rows))
	l.order = make([]int, 0, len(rows))
	for i := range rows {
		r := rows[i]
		if r.Stock < 0 {
			r.Stock = 0
		}
		if _, dup := l.rows[r.Index]; !dup {
			l.order = append(l.order, r.Index)
		}
		l.rows[r.Index] = &r
		l.initial[r.Index] = r.Stock
	}
	l.lines = nil
}

// Len cantidad de filas cargadas.
func (l *Ledger) Len() int { return len(l.order) }

// Rows devuelve una copia de las filas en el orden de carga.
func (l *Ledger) Rows() []entity.InventoryRow {
	out := make([]entity.InventoryRow, 0, len(l.order))
	for _, idx := range l.order {
		out = append(out, *l.rows[idx])
	}
	return out
}

// Row devuelve una copia de la fila indicada.
func (l *Ledger) Row(index int) (entity.InventoryRow, error) {
	r, ok := l.rows[index]
	if !ok {
		return entity.InventoryRow{}, fmt.Errorf("fila %d: %w", index, domain.ErrNotFound)
	}
	return *r, nil
}

// InitialStock stock de la fila al último Load.
func (l *Ledger) InitialStock(index int) (int, bool) {
	s, ok := l.initial[index]
	return s, ok
}

// Lines devuelve una copia de las líneas de la solicitud en curso.
func (l *Ledger) Lines() []entity.LineItem {
	out := make([]entity.LineItem, len(l.lines))
	for i, ln := range l.lines {
		out[i] = ln.item
	}
	return out
}

// Reserve descuenta quantity del stock de la fila y la agrega a la solicitud,
// consolidando con una línea existente de mismo producto, lote y ubicación.
func (l *Ledger) Reserve(rowIndex, quantity int) (entity.LineItem, error) {
	r, ok := l.rows[rowIndex]
	if !ok {
		return entity.LineItem{}, fmt.Errorf("fila %d: %w", rowIndex, domain.ErrNotFound)
	}
	if quantity <= 0 {
		return entity.LineItem{}, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, quantity)
	}
	if quantity > r.Stock {
		return entity.LineItem{}, &domain.InsufficientStockError{Available: r.Stock}
	}

	key := entity.KeyOf(*r)
	for i := range l.lines {
		ln := &l.lines[i]
		if ln.item.Key() != key {
			continue
		}
		r.Stock -= quantity
		ln.item.Quantity += quantity
		ln.allocs = addAllocation(ln.allocs, rowIndex, quantity)
		return ln.item, nil
	}

	item := entity.LineItem{
		ProductName:        r.ProductName,
		Code:               r.Code,
		Lot:                r.Lot,
		Location:           r.Location,
		Warehouse:          r.Warehouse,
		Expiry:             r.Expiry,
		Quantity:           quantity,
		StockAtReservation: r.Stock,
		RowIndex:           rowIndex,
	}
	r.Stock -= quantity
	l.lines = append(l.lines, line{item: item, allocs: []allocation{{row: rowIndex, qty: quantity}}})
	return item, nil
}

// UpdateQuantity fija la cantidad de la línea. Un aumento se descuenta de la
// fila de origen; una disminución devuelve stock empezando por la última asignación.
func (l *Ledger) UpdateQuantity(lineIndex, quantity int) (entity.LineItem, error) {
	if lineIndex < 0 || lineIndex >= len(l.lines) {
		return entity.LineItem{}, fmt.Errorf("línea %d: %w", lineIndex, domain.ErrNotFound)
	}
	if quantity <= 0 {
		return entity.LineItem{}, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, quantity)
	}
	ln := &l.lines[lineIndex]
	delta := quantity - ln.item.Quantity
	switch {
	case delta > 0:
		r, ok := l.rows[ln.item.RowIndex]
		if !ok {
			return entity.LineItem{}, fmt.Errorf("fila %d: %w", ln.item.RowIndex, domain.ErrNotFound)
		}
		if delta > r.Stock {
			return entity.LineItem{}, &domain.InsufficientStockError{Available: r.Stock}
		}
		r.Stock -= delta
		ln.allocs = addAllocation(ln.allocs, ln.item.RowIndex, delta)
	case delta < 0:
		ln.allocs = l.giveBack(ln.allocs, -delta)
	}
	ln.item.Quantity = quantity
	return ln.item, nil
}

// Release quita la línea de la solicitud y devuelve su cantidad al stock.
func (l *Ledger) Release(lineIndex int) (entity.LineItem, error) {
	if lineIndex < 0 || lineIndex >= len(l.lines) {
		return entity.LineItem{}, fmt.Errorf("línea %d: %w", lineIndex, domain.ErrNotFound)
	}
	ln := l.lines[lineIndex]
	l.restore(ln.allocs)
	l.lines = append(l.lines[:lineIndex], l.lines[lineIndex+1:]...)
	return ln.item, nil
}

// Reset devuelve el stock de todas las líneas y vacía la solicitud.
func (l *Ledger) Reset() {
	for _, ln := range l.lines {
		l.restore(ln.allocs)
	}
	l.lines = nil
}

// Finalize vacía la solicitud SIN devolver stock: las reservas quedan como retiro.
// Devuelve las líneas finalizadas.
func (l *Ledger) Finalize() []entity.LineItem {
	out := l.Lines()
	l.lines = nil
	return out
}

func (l *Ledger) restore(allocs []allocation) {
	for _, a := range allocs {
		if r, ok := l.rows[a.row]; ok {
			r.Stock += a.qty
		}
	}
}

// giveBack devuelve qty unidades recorriendo las asignaciones desde la última.
func (l *Ledger) giveBack(allocs []allocation, qty int) []allocation {
	for i := len(allocs) - 1; i >= 0 && qty > 0; i-- {
		take := allocs[i].qty
		if take > qty {
			take = qty
		}
		if r, ok := l.rows[allocs[i].row]; ok {
			r.Stock += take
		}
		allocs[i].qty -= take
		qty -= take
		if allocs[i].qty == 0 {
			allocs = allocs[:i]
		}
	}
	return allocs
}

func addAllocation(allocs []allocation, row, qty int) []allocation {
	if n := len(allocs); n > 0 && allocs[n-1].row == row {
		allocs[n-1].qty += qty
		return allocs
	}
	return append(allocs, allocation{row: row, qty: qty})
}
