package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vale-consumo/internal/application/dto"
	"github.com/jhoicas/vale-consumo/internal/application/usecase"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
)

// PeopleHandler listas de solicitantes y usuarios de bodega. Cada instancia
// atiende un rol.
type PeopleHandler struct {
	uc   *usecase.PeopleUseCase
	role entity.PersonRole
}

// NewPeopleHandler construye el handler para role.
func NewPeopleHandler(uc *usecase.PeopleUseCase, role entity.PersonRole) *PeopleHandler {
	return &PeopleHandler{uc: uc, role: role}
}

// List godoc
// @Summary      Listar nombres
// @Tags         people
// @Produce      json
// @Success      200  {object}  dto.PeopleListResponse
// @Router       /api/people/requesters [get]
// @Router       /api/people/warehouse-users [get]
func (h *PeopleHandler) List(c *fiber.Ctx) error {
	names, err := h.uc.List(h.role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PeopleListResponse{Names: names})
}

// Add godoc
// @Summary      Agregar nombre
// @Tags         people
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PersonRequest  true  "Nombre"
// @Success      200   {object}  dto.PersonMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/people/requesters [post]
// @Router       /api/people/warehouse-users [post]
func (h *PeopleHandler) Add(c *fiber.Ctx) error {
	var in dto.PersonRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validateStruct(in); msg != "" {
		return validationError(c, msg)
	}
	changed, err := h.uc.Add(h.role, in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PersonMutationResponse{Changed: changed})
}

// Remove godoc
// @Summary      Quitar nombre
// @Tags         people
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.PersonMutationResponse
// @Router       /api/people/requesters/{name} [delete]
// @Router       /api/people/warehouse-users/{name} [delete]
func (h *PeopleHandler) Remove(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return validationError(c, "name es requerido")
	}
	changed, err := h.uc.Remove(h.role, name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PersonMutationResponse{Changed: changed})
}
