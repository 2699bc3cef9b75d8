package dto

// ── Inventario ────────────────────────────────────────────────────────────────

// InventoryQuery filtros de GET /api/inventory.
type InventoryQuery struct {
	Product       string   `query:"product"`
	Lot           string   `query:"lot"`
	Location      string   `query:"location"`
	ExpiryFrom    string   `query:"expiry_from" validate:"omitempty,datetime=2006-01-02"`
	ExpiryTo      string   `query:"expiry_to" validate:"omitempty,datetime=2006-01-02"`
	Subfamily     string   `query:"subfamily"`
	OnlyWithStock bool     `query:"only_with_stock"`
	Exclude       []string `query:"exclude"` // ubicaciones excluidas
}

// InventoryRowResponse fila del inventario cargado con su stock actual.
type InventoryRowResponse struct {
	Index        int    `json:"index"`
	Area         string `json:"area,omitempty"`
	Family       string `json:"family,omitempty"`
	Subfamily    string `json:"subfamily,omitempty"`
	Code         string `json:"code,omitempty"`
	ProductName  string `json:"product_name"`
	Unit         string `json:"unit,omitempty"`
	BusinessUnit string `json:"business_unit,omitempty"`
	Warehouse    string `json:"warehouse,omitempty"`
	Location     string `json:"location"`
	SerialNumber string `json:"serial_number,omitempty"`
	Lot          string `json:"lot"`
	Expiry       string `json:"expiry"` // YYYY-MM-DD o ""
	Incoming     int    `json:"incoming"`
	Reserved     int    `json:"reserved"`
	Stock        int    `json:"stock"`
	InitialStock int    `json:"initial_stock"`
	ExpiryState  string `json:"expiry_state,omitempty"` // vencido | vencimiento_proximo
}

// InventoryListResponse resultado filtrado.
type InventoryListResponse struct {
	Rows   []InventoryRowResponse `json:"rows"`
	Count  int                    `json:"count"`
	Loaded int                    `json:"loaded"` // filas totales cargadas
}

// LoadRequest body para POST /api/inventory/load. Path vacío = archivo por defecto.
type LoadRequest struct {
	Path string `json:"path"`
}

// LoadStatusResponse estado de la carga en segundo plano.
type LoadStatusResponse struct {
	JobID     string `json:"job_id,omitempty"`
	State     string `json:"state"` // idle | loading | done | error
	File      string `json:"file,omitempty"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"` // -1 = desconocido
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Rows      int    `json:"rows"`
}

// ── Solicitud en curso ────────────────────────────────────────────────────────

// ReserveRequest body para POST /api/vale/items.
type ReserveRequest struct {
	RowIndex int `json:"row_index" validate:"min=0"`
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// UpdateQuantityRequest body para PUT /api/vale/items/:index.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// LineItemResponse línea de la solicitud en curso.
type LineItemResponse struct {
	Index              int    `json:"index"`
	ProductName        string `json:"product_name"`
	Code               string `json:"code,omitempty"`
	Lot                string `json:"lot"`
	Location           string `json:"location"`
	Warehouse          string `json:"warehouse,omitempty"`
	Expiry             string `json:"expiry"`
	Quantity           int    `json:"quantity"`
	StockAtReservation int    `json:"stock_at_reservation"`
	RowIndex           int    `json:"row_index"`
}

// ValeResponse solicitud en curso.
type ValeResponse struct {
	Lines         []LineItemResponse `json:"lines"`
	Count         int                `json:"count"`
	TotalQuantity int                `json:"total_quantity"`
}

// GenerateRequest body para POST /api/vale/generate.
type GenerateRequest struct {
	Requester string `json:"requester" validate:"required"`
	Preparer  string `json:"preparer" validate:"required"`
	Copies    int    `json:"copies" validate:"omitempty,min=1,max=50"`
	Print     bool   `json:"print"`
}

// GenerateResponse resultado de emitir un vale. Los campos *_error informan
// fallas no bloqueantes (impresión, índice, archivo remoto).
type GenerateResponse struct {
	Number           int    `json:"number"`
	PaddedNumber     string `json:"padded_number"`
	Document         string `json:"pdf"`
	Sidecar          string `json:"json,omitempty"`
	ItemCount        int    `json:"items_count"`
	Printed          bool   `json:"printed"`
	PrintError       string `json:"print_error,omitempty"`
	PersistenceError string `json:"persistence_error,omitempty"`
	ArchiveError     string `json:"archive_error,omitempty"`
}

// ── Índice de solicitudes ─────────────────────────────────────────────────────

// RegistryEntryResponse entrada del índice.
type RegistryEntryResponse struct {
	Number       int    `json:"number"`
	PaddedNumber string `json:"padded_number"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	Document     string `json:"pdf"`
	Sidecar      string `json:"json"`
	ItemCount    int    `json:"items_count"`
}

// RegistryListResponse listado del índice.
type RegistryListResponse struct {
	Entries   []RegistryEntryResponse `json:"entries"`
	Total     int                     `json:"total"`
	Reindexed int                     `json:"reindexed,omitempty"` // agregadas por reindexación automática
}

// RegisterVoucherRequest body para POST /api/registry.
type RegisterVoucherRequest struct {
	Document  string `json:"pdf" validate:"required"`
	Sidecar   string `json:"json"`
	ItemCount int    `json:"items_count" validate:"min=0"`
}

// SetStatusRequest body para PATCH /api/registry/status.
type SetStatusRequest struct {
	Numbers []int  `json:"numbers" validate:"required,min=1,dive,gt=0"`
	Status  string `json:"status" validate:"required,oneof=Pendiente Descontado Anulado"`
}

// UpdateEntryRequest body para PATCH /api/registry/:number.
type UpdateEntryRequest struct {
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=Pendiente Descontado Anulado"`
	CreatedAt *string `json:"created_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05"`
	Document  *string `json:"pdf,omitempty"`
	Sidecar   *string `json:"json,omitempty"`
	ItemCount *int    `json:"items_count,omitempty" validate:"omitempty,min=0"`
}

// MutationResponse resultado de una modificación del índice.
type MutationResponse struct {
	Updated          int    `json:"updated"`
	PersistenceError string `json:"persistence_error,omitempty"`
}

// ReindexResponse resultado de POST /api/registry/reindex.
type ReindexResponse struct {
	Added            int    `json:"added"`
	Skipped          int    `json:"skipped"`
	PersistenceError string `json:"persistence_error,omitempty"`
}

// MergeRequest body para POST /api/registry/merge.
type MergeRequest struct {
	Numbers []int `json:"numbers" validate:"required,min=2,dive,gt=0"`
}

// MergeResponse vale unificado generado.
type MergeResponse struct {
	File            string   `json:"file"`
	Mode            string   `json:"mode"` // tabla | concatenado
	Lines           int      `json:"lines"`
	MissingSidecars []string `json:"missing_sidecars,omitempty"`
}

// ExportRequest body para POST /api/registry/export. Status vacío = todas.
type ExportRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=Pendiente Descontado Anulado"`
	Format string `json:"format" validate:"required,oneof=pdf xlsx"`
}

// ExportResponse archivo generado en el historial.
type ExportResponse struct {
	File  string `json:"file"`
	Count int    `json:"count"`
}

// CleanResponse resultado de DELETE /api/registry.
type CleanResponse struct {
	Deleted          int      `json:"deleted"`
	Errors           []string `json:"errors,omitempty"`
	PersistenceError string   `json:"persistence_error,omitempty"`
}

// ── Personas ──────────────────────────────────────────────────────────────────

// PersonRequest body para agregar un solicitante o usuario de bodega.
type PersonRequest struct {
	Name string `json:"name" validate:"required"`
}

// PeopleListResponse lista de nombres.
type PeopleListResponse struct {
	Names []string `json:"names"`
}

// PersonMutationResponse indica si la lista cambió.
type PersonMutationResponse struct {
	Changed bool `json:"changed"`
}
