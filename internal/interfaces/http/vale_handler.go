package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vale-consumo/internal/application/dto"
	"github.com/jhoicas/vale-consumo/internal/application/vale"
)

// ValeHandler inventario cargado y solicitud en curso.
type ValeHandler struct {
	svc *vale.ValeService
}

// NewValeHandler construye el handler.
func NewValeHandler(svc *vale.ValeService) *ValeHandler {
	return &ValeHandler{svc: svc}
}

// StartLoad godoc
// @Summary      Cargar planilla de inventario en segundo plano
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoadRequest  false  "Ruta de la planilla (vacía = por defecto)"
// @Success      202   {object}  dto.LoadStatusResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/load [post]
func (h *ValeHandler) StartLoad(c *fiber.Ctx) error {
	var in dto.LoadRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	if _, err := h.svc.StartLoad(in.Path); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(h.svc.LoadStatus())
}

// LoadStatus godoc
// @Summary      Estado de la carga de inventario
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.LoadStatusResponse
// @Router       /api/inventory/load [get]
func (h *ValeHandler) LoadStatus(c *fiber.Ctx) error {
	return c.JSON(h.svc.LoadStatus())
}

// Inventory godoc
// @Summary      Filtrar inventario cargado
// @Tags         inventory
// @Produce      json
// @Param        product          query  string  false  "Producto (subcadena)"
// @Param        lot              query  string  false  "Lote (subcadena)"
// @Param        location         query  string  false  "Ubicación (subcadena)"
// @Param        expiry_from      query  string  false  "Vencimiento desde (YYYY-MM-DD)"
// @Param        expiry_to        query  string  false  "Vencimiento hasta (YYYY-MM-DD)"
// @Param        subfamily        query  string  false  "Subfamilia"
// @Param        only_with_stock  query  bool    false  "Sólo con stock"
// @Param        exclude          query  []string  false  "Ubicaciones excluidas"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *ValeHandler) Inventory(c *fiber.Ctx) error {
	var q dto.InventoryQuery
	if err := c.QueryParser(&q); err != nil {
		return validationError(c, "parámetros inválidos")
	}
	if msg := validateStruct(q); msg != "" {
		return validationError(c, msg)
	}
	return c.JSON(h.svc.Inventory(q))
}

// Subfamilies godoc
// @Summary      Subfamilias del inventario
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/inventory/subfamilies [get]
func (h *ValeHandler) Subfamilies(c *fiber.Ctx) error {
	return c.JSON(h.svc.Subfamilies())
}

// Locations godoc
// @Summary      Ubicaciones del inventario
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/inventory/locations [get]
func (h *ValeHandler) Locations(c *fiber.Ctx) error {
	return c.JSON(h.svc.Locations())
}

// Current godoc
// @Summary      Solicitud en curso
// @Tags         vale
// @Produce      json
// @Success      200  {object}  dto.ValeResponse
// @Router       /api/vale [get]
func (h *ValeHandler) Current(c *fiber.Ctx) error {
	return c.JSON(h.svc.Current())
}

// Reserve godoc
// @Summary      Agregar producto a la solicitud
// @Tags         vale
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveRequest  true  "Fila y cantidad"
// @Success      201   {object}  dto.LineItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vale/items [post]
func (h *ValeHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validateStruct(in); msg != "" {
		return validationError(c, msg)
	}
	out, err := h.svc.Reserve(in.RowIndex, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateQuantity godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         vale
// @Accept       json
// @Produce      json
// @Param        index  path  int  true  "Índice de la línea"
// @Param        body   body  dto.UpdateQuantityRequest  true  "Nueva cantidad"
// @Success      200    {object}  dto.LineItemResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/vale/items/{index} [put]
func (h *ValeHandler) UpdateQuantity(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil || index < 0 {
		return validationError(c, "index inválido")
	}
	var in dto.UpdateQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validateStruct(in); msg != "" {
		return validationError(c, msg)
	}
	out, err := h.svc.UpdateQuantity(index, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Release godoc
// @Summary      Quitar línea de la solicitud
// @Tags         vale
// @Produce      json
// @Param        index  path  int  true  "Índice de la línea"
// @Success      200    {object}  dto.LineItemResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/vale/items/{index} [delete]
func (h *ValeHandler) Release(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil || index < 0 {
		return validationError(c, "index inválido")
	}
	out, err := h.svc.Release(index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reset godoc
// @Summary      Vaciar la solicitud y restaurar stock
// @Tags         vale
// @Success      204
// @Router       /api/vale [delete]
func (h *ValeHandler) Reset(c *fiber.Ctx) error {
	h.svc.Reset()
	return c.SendStatus(fiber.StatusNoContent)
}

// Generate godoc
// @Summary      Emitir el vale de la solicitud en curso
// @Tags         vale
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateRequest  true  "Solicitante, usuario de bodega e impresión"
// @Success      201   {object}  dto.GenerateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/vale/generate [post]
func (h *ValeHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validateStruct(in); msg != "" {
		return validationError(c, msg)
	}
	out, err := h.svc.Generate(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
