package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrEmptyVale          = errors.New("no hay productos en la solicitud")
	ErrNoInventory        = errors.New("no hay inventario cargado")
	ErrLoadInProgress     = errors.New("ya hay una carga de inventario en curso")
	ErrPrinterUnavailable = errors.New("impresión no disponible en este sistema")
)

// InsufficientStockError informa el stock disponible al momento del rechazo.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("no hay suficiente stock. Stock disponible: %d", e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
