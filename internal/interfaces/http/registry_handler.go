package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vale-consumo/internal/application/dto"
	"github.com/jhoicas/vale-consumo/internal/application/vale"
)

// RegistryHandler índice de solicitudes emitidas.
type RegistryHandler struct {
	svc *vale.ValeService
}

// NewRegistryHandler construye el handler.
func NewRegistryHandler(svc *vale.ValeService) *RegistryHandler {
	return &RegistryHandler{svc: svc}
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         registry
// @Produce      json
// @Param        status  query  string  false  "Pendiente | Descontado | Anulado"
// @Success      200     {object}  dto.RegistryListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/registry [get]
func (h *RegistryHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.ListRegistry(c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByNumber godoc
// @Summary      Obtener solicitud por número
// @Tags         registry
// @Produce      json
// @Param        number  path  int  true  "Número correlativo"
// @Success      200     {object}  dto.RegistryEntryResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/registry/{number} [get]
func (h *RegistryHandler) GetByNumber(c *fiber.Ctx) error {
	number, err := c.ParamsInt("number")
	if err != nil || number <= 0 {
		return validationError(c, "number inválido")
	}
	out, err := h.svc.FindEntry(number)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar un documento existente con un número nuevo
// @Tags         registry
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterVoucherRequest  true  "Documento"
// @Success      201   {object}  dto.RegistryEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/registry [post]
func (h *RegistryHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterVoucherRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validateStruct(in); msg != "" {
		return validationError(c, msg)
	}
	out, err := h.svc.RegisterVoucher(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetStatus godoc
// @Summary      Cambiar estado de varias solicitudes
// @Tags         registry
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetStatusRequest  true  "Números y estado"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/registry/status [patch]
func (h *RegistryHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validateStruct(in); msg != "" {
		return validationError(c, msg)
	}
	out, err := h.svc.SetStatus(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar campos de una solicitud
// @Tags         registry
// @Accept       json
// @Produce      json
// @Param        number  path  int  true  "Número correlativo"
// @Param        body    body  dto.UpdateEntryRequest  true  "Campos a modificar"
// @Success      200     {object}  dto.MutationResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/registry/{number} [patch]
func (h *RegistryHandler) Update(c *fiber.Ctx) error {
	number, err := c.ParamsInt("number")
	if err != nil || number <= 0 {
		return validationError(c, "number inválido")
	}
	var in dto.UpdateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validateStruct(in); msg != "" {
		return validationError(c, msg)
	}
	out, err := h.svc.UpdateEntry(number, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reindex godoc
// @Summary      Registrar documentos del historial que falten en el índice
// @Tags         registry
// @Produce      json
// @Success      200  {object}  dto.ReindexResponse
// @Router       /api/registry/reindex [post]
func (h *RegistryHandler) Reindex(c *fiber.Ctx) error {
	return c.JSON(h.svc.Reindex())
}

// Merge godoc
// @Summary      Unificar solicitudes
// @Tags         registry
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MergeRequest  true  "Números a unificar"
// @Success      201   {object}  dto.MergeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/registry/merge [post]
func (h *RegistryHandler) Merge(c *fiber.Ctx) error {
	var in dto.MergeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validateStruct(in); msg != "" {
		return validationError(c, msg)
	}
	out, err := h.svc.Merge(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Export godoc
// @Summary      Exportar listado de solicitudes
// @Tags         registry
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExportRequest  true  "Estado y formato"
// @Success      201   {object}  dto.ExportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/registry/export [post]
func (h *RegistryHandler) Export(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validateStruct(in); msg != "" {
		return validationError(c, msg)
	}
	out, err := h.svc.Export(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Clean godoc
// @Summary      Borrar historial y reiniciar numeración
// @Tags         registry
// @Produce      json
// @Success      200  {object}  dto.CleanResponse
// @Router       /api/registry [delete]
func (h *RegistryHandler) Clean(c *fiber.Ctx) error {
	return c.JSON(h.svc.CleanDatabase())
}
