package entity

// PersonRole lista de personas que se elige al emitir un vale.
type PersonRole string

const (
	RoleRequester     PersonRole = "solicitantes"
	RoleWarehouseUser PersonRole = "usuarios_bodega"
)

// Valid indica si el rol es conocido.
func (r PersonRole) Valid() bool {
	return r == RoleRequester || r == RoleWarehouseUser
}
