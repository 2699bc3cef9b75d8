package entity

// TimestampLayout formato ISO-8601 a segundos, sin zona, de created_at y emission_time.
const TimestampLayout = "2006-01-02T15:04:05"

// ValeStatus estado del ciclo de vida de una solicitud registrada.
type ValeStatus string

const (
	ValeStatusPending  ValeStatus = "Pendiente"
	ValeStatusDeducted ValeStatus = "Descontado"
	ValeStatusVoided   ValeStatus = "Anulado"
)

// Valid indica si el estado es uno de los tres admitidos.
func (s ValeStatus) Valid() bool {
	switch s {
	case ValeStatusPending, ValeStatusDeducted, ValeStatusVoided:
		return true
	}
	return false
}

// RegistryEntry solicitud emitida y registrada en el índice de vales.
type RegistryEntry struct {
	Number    int
	Status    ValeStatus
	CreatedAt string // ISO-8601 a segundos; se ordena lexicográficamente
	Document  string // nombre del PDF dentro del historial
	Sidecar   string // nombre del JSON asociado, puede ser vacío
	ItemCount int
}
