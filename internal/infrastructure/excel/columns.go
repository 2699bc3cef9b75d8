package excel

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Columnas canónicas del inventario.
const (
	colProduct      = "Nombre_del_Producto"
	colExpiry       = "Fecha_de_Vencimiento"
	colAvailable    = "Cantidad_Disponible"
	colLot          = "Lote"
	colLocation     = "Ubicacion"
	colFamily       = "Familia"
	colSubfamily    = "Subfamilia"
	colCode         = "Codigo"
	colUnit         = "Unidad"
	colBusinessUnit = "Unidad_de_negocio"
	colWarehouse    = "Bodega"
	colSerial       = "N_Serie"
	colIncoming     = "Por_llegar"
	colReserved     = "Reserva"
	colArea         = "Area"
)

// requiredColumns en el orden en que se informan cuando faltan.
var requiredColumns = []string{colProduct, colLot, colExpiry, colAvailable}

// columnAliases claves canónicas (sin acentos, minúsculas) aceptadas por columna.
// Si la planilla trae la columna canónica misma se usa esa; si no, el primer
// alias presente en el orden de la lista.
var columnAliases = []struct {
	target  string
	aliases []string
}{
	{colProduct, []string{"producto", "nombre_del_producto"}},
	{colExpiry, []string{"fecha_de_vencimiento", "fecha_vencimiento"}},
	{colAvailable, []string{"saldo_stock", "cantidad_disponible"}},
	{colLot, []string{"lote"}},
	{colLocation, []string{"ubicacion"}},
	{colFamily, []string{"familia"}},
	{colSubfamily, []string{"subfamilia"}},
	{colCode, []string{"codigo"}},
	{colUnit, []string{"unidad"}},
	{colBusinessUnit, []string{"unidad_de_negocio"}},
	{colWarehouse, []string{"bodega"}},
	{colSerial, []string{"n°_serie", "nº_serie", "n_serie", "numero_de_serie", "nro_serie"}},
	{colIncoming, []string{"por_llegar"}},
	{colReserved, []string{"reserva"}},
	{colArea, []string{"area"}},
}

// normalizeHeader recorta y reemplaza espacios por guiones bajos.
func normalizeHeader(h string) string {
	return strings.ReplaceAll(strings.TrimSpace(h), " ", "_")
}

// canonicalKey quita marcas diacríticas (NFD) y pasa a minúsculas:
// "Ubicación" → "ubicacion", "Código" → "codigo".
func canonicalKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// mapColumns devuelve, por columna canónica, el índice de la columna de la planilla.
func mapColumns(headers []string) map[string]int {
	byKey := make(map[string]int, len(headers))
	for i, h := range headers {
		key := canonicalKey(normalizeHeader(h))
		if key == "" {
			continue
		}
		if _, dup := byKey[key]; !dup {
			byKey[key] = i
		}
	}

	out := make(map[string]int, len(columnAliases))
	for _, c := range columnAliases {
		if idx, ok := byKey[canonicalKey(c.target)]; ok {
			out[c.target] = idx
			continue
		}
		for _, alias := range c.aliases {
			if idx, ok := byKey[alias]; ok {
				out[c.target] = idx
				break
			}
		}
	}
	return out
}

// missingColumns nombres (con espacios) de las columnas requeridas ausentes.
func missingColumns(mapped map[string]int) []string {
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := mapped[c]; !ok {
			missing = append(missing, strings.ReplaceAll(c, "_", " "))
		}
	}
	return missing
}
