package vale

import (
	"github.com/jhoicas/vale-consumo/internal/application/dto"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
	"github.com/jhoicas/vale-consumo/internal/domain/inventory"
)

func toInventoryRowResponse(r entity.InventoryRow, initial int, state inventory.ExpiryState) dto.InventoryRowResponse {
	return dto.InventoryRowResponse{
		Index:        r.Index,
		Area:         r.Area,
		Family:       r.Family,
		Subfamily:    r.Subfamily,
		Code:         r.Code,
		ProductName:  r.ProductName,
		Unit:         r.Unit,
		BusinessUnit: r.BusinessUnit,
		Warehouse:    r.Warehouse,
		Location:     r.Location,
		SerialNumber: r.SerialNumber,
		Lot:          r.Lot,
		Expiry:       r.ExpiryString(),
		Incoming:     r.Incoming,
		Reserved:     r.ReservedElsewhere,
		Stock:        r.Stock,
		InitialStock: initial,
		ExpiryState:  string(state),
	}
}

func toLineItemResponse(index int, l entity.LineItem) dto.LineItemResponse {
	return dto.LineItemResponse{
		Index:              index,
		ProductName:        l.ProductName,
		Code:               l.Code,
		Lot:                l.Lot,
		Location:           l.Location,
		Warehouse:          l.Warehouse,
		Expiry:             entity.FormatExpiry(l.Expiry),
		Quantity:           l.Quantity,
		StockAtReservation: l.StockAtReservation,
		RowIndex:           l.RowIndex,
	}
}

func toValeResponse(lines []entity.LineItem) *dto.ValeResponse {
	out := &dto.ValeResponse{Lines: make([]dto.LineItemResponse, 0, len(lines))}
	for i, l := range lines {
		out.Lines = append(out.Lines, toLineItemResponse(i, l))
		out.TotalQuantity += l.Quantity
	}
	out.Count = len(out.Lines)
	return out
}

func toRegistryEntryResponse(e entity.RegistryEntry) dto.RegistryEntryResponse {
	return dto.RegistryEntryResponse{
		Number:       e.Number,
		PaddedNumber: entity.PadNumber(e.Number),
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		Document:     e.Document,
		Sidecar:      e.Sidecar,
		ItemCount:    e.ItemCount,
	}
}

func toRegistryListResponse(entries []entity.RegistryEntry) *dto.RegistryListResponse {
	out := &dto.RegistryListResponse{Entries: make([]dto.RegistryEntryResponse, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, toRegistryEntryResponse(e))
	}
	out.Total = len(out.Entries)
	return out
}
