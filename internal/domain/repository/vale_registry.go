package repository

import "github.com/jhoicas/vale-consumo/internal/domain/entity"

// PersistenceResult resultado de reescribir el índice. El estado en memoria es
// válido aunque Err no sea nil; el llamador decide si informarlo.
type PersistenceResult struct {
	Err error
}

// OK indica si la escritura se completó (o no hubo nada que escribir).
func (r PersistenceResult) OK() bool { return r.Err == nil }

// ReindexResult conteo de una reindexación del historial.
type ReindexResult struct {
	Added   int
	Skipped int
}

// EntryUpdate campos a modificar en una entrada; nil = sin cambio.
type EntryUpdate struct {
	Status    *entity.ValeStatus
	CreatedAt *string
	Document  *string
	Sidecar   *string
	ItemCount *int
}

// ValeRegistry puerto del índice de solicitudes emitidas (numeración y estados).
type ValeRegistry interface {
	Dir() string
	Path() string
	Sequence() int
	Len() int
	ReserveNumber() (int, PersistenceResult)
	AppendEntry(number int, document, sidecar string, itemCount int) (entity.RegistryEntry, PersistenceResult)
	RegisterVoucher(document, sidecar string, itemCount int) (entity.RegistryEntry, PersistenceResult)
	List(status entity.ValeStatus) []entity.RegistryEntry
	SetStatus(numbers []int, status entity.ValeStatus) (int, PersistenceResult)
	UpdateEntry(number int, upd EntryUpdate) (bool, PersistenceResult)
	FindByNumber(number int) (entity.RegistryEntry, error)
	Reindex() (ReindexResult, PersistenceResult)
	ResetAll() PersistenceResult
}
