package inventory

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/vale-consumo/internal/domain/entity"
)

// AllSubfamilies valor de subfamilia que desactiva ese filtro.
const AllSubfamilies = "(Todas)"

// FilterOptions criterios de búsqueda sobre el inventario cargado.
// Los textos se comparan por subcadena sin distinguir mayúsculas.
type FilterOptions struct {
	Product           string
	Lot               string
	Location          string
	ExpiryFrom        string // YYYY-MM-DD, inclusivo; inválido = se ignora
	ExpiryTo          string
	Subfamily         string
	OnlyWithStock     bool
	ExcludedLocations []string
	Today             time.Time // referencia del orden por proximidad de vencimiento
}

// Apply devuelve las filas que cumplen todos los criterios, en el orden original.
func (o FilterOptions) Apply(rows []entity.InventoryRow) []entity.InventoryRow {
	product := strings.ToLower(strings.TrimSpace(o.Product))
	lot := strings.ToLower(strings.TrimSpace(o.Lot))
	location := strings.ToLower(strings.TrimSpace(o.Location))
	subfamily := strings.TrimSpace(o.Subfamily)
	from, hasFrom := parseDay(o.ExpiryFrom)
	to, hasTo := parseDay(o.ExpiryTo)

	excluded := make(map[string]struct{}, len(o.ExcludedLocations))
	for _, x := range o.ExcludedLocations {
		excluded[strings.ToLower(strings.TrimSpace(x))] = struct{}{}
	}

	out := make([]entity.InventoryRow, 0, len(rows))
	for _, r := range rows {
		if product != "" && !strings.Contains(strings.ToLower(r.ProductName), product) {
			continue
		}
		if subfamily != "" && subfamily != AllSubfamilies && r.Subfamily != subfamily {
			continue
		}
		if lot != "" && !strings.Contains(strings.ToLower(r.Lot), lot) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(r.Location), location) {
			continue
		}
		if hasFrom || hasTo {
			if r.Expiry == nil {
				continue
			}
			d := truncateDay(*r.Expiry)
			if hasFrom && d.Before(from) {
				continue
			}
			if hasTo && d.After(to) {
				continue
			}
		}
		if o.OnlyWithStock && r.Stock <= 0 {
			continue
		}
		if len(excluded) > 0 {
			if _, skip := excluded[strings.ToLower(strings.TrimSpace(r.Location))]; skip {
				continue
			}
		}
		out = append(out, r)
	}

	if product != "" {
		out = SortByExpiryProximity(out, o.Today)
	}
	return out
}

// ExpiryState marca visual del vencimiento más próximo de cada producto.
type ExpiryState string

const (
	ExpiryStateNone    ExpiryState = ""
	ExpiryStateExpired ExpiryState = "vencido"
	ExpiryStateNext    ExpiryState = "vencimiento_proximo"
)

// ExpiryStates calcula, por índice de fila, si la fila tiene el vencimiento
// más temprano de su producto y si ya venció respecto de today.
func ExpiryStates(rows []entity.InventoryRow, today time.Time) map[int]ExpiryState {
	earliest := earliestByProduct(rows)
	day := truncateDay(today)
	out := make(map[int]ExpiryState, len(rows))
	for _, r := range rows {
		key := productKey(r.ProductName)
		if key == "" || r.Expiry == nil {
			continue
		}
		e := truncateDay(*r.Expiry)
		if !e.Equal(earliest[key]) {
			continue
		}
		if e.Before(day) {
			out[r.Index] = ExpiryStateExpired
		} else {
			out[r.Index] = ExpiryStateNext
		}
	}
	return out
}

// SortByExpiryProximity pone primero las filas con el vencimiento más temprano
// de su producto, ordenadas por días restantes; el resto conserva su orden.
func SortByExpiryProximity(rows []entity.InventoryRow, today time.Time) []entity.InventoryRow {
	earliest := earliestByProduct(rows)
	day := truncateDay(today)

	type ranked struct {
		row     entity.InventoryRow
		nearest bool
		days    int
	}
	rk := make([]ranked, len(rows))
	for i, r := range rows {
		rk[i] = ranked{row: r}
		key := productKey(r.ProductName)
		if key == "" || r.Expiry == nil {
			continue
		}
		e := truncateDay(*r.Expiry)
		if e.Equal(earliest[key]) {
			rk[i].nearest = true
			rk[i].days = int(e.Sub(day).Hours() / 24)
		}
	}
	sort.SliceStable(rk, func(i, j int) bool {
		a, b := rk[i], rk[j]
		if a.nearest != b.nearest {
			return a.nearest
		}
		if a.nearest {
			return a.days < b.days
		}
		return false
	})

	out := make([]entity.InventoryRow, len(rk))
	for i := range rk {
		out[i] = rk[i].row
	}
	return out
}

// Subfamilies valores distintos no vacíos de subfamilia, ordenados.
func Subfamilies(rows []entity.InventoryRow) []string {
	return distinct(rows, func(r entity.InventoryRow) string { return r.Subfamily })
}

// Locations valores distintos no vacíos de ubicación, ordenados.
func Locations(rows []entity.InventoryRow) []string {
	return distinct(rows, func(r entity.InventoryRow) string { return strings.TrimSpace(r.Location) })
}

func distinct(rows []entity.InventoryRow, field func(entity.InventoryRow) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range rows {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func earliestByProduct(rows []entity.InventoryRow) map[string]time.Time {
	out := make(map[string]time.Time)
	for _, r := range rows {
		key := productKey(r.ProductName)
		if key == "" || r.Expiry == nil {
			continue
		}
		e := truncateDay(*r.Expiry)
		if prev, ok := out[key]; !ok || e.Before(prev) {
			out[key] = e
		}
	}
	return out
}

func productKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(entity.ExpiryLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
