package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vale-consumo/internal/application/usecase"
	"github.com/jhoicas/vale-consumo/internal/application/vale"
	"github.com/jhoicas/vale-consumo/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ValeSvc  *vale.ValeService
	PeopleUC *usecase.PeopleUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Inventario
	valeHandler := NewValeHandler(deps.ValeSvc)
	inv := api.Group("/inventory")
	inv.Post("/load", valeHandler.StartLoad)
	inv.Get("/load", valeHandler.LoadStatus)
	inv.Get("/subfamilies", valeHandler.Subfamilies)
	inv.Get("/locations", valeHandler.Locations)
	inv.Get("/", valeHandler.Inventory)

	// Solicitud en curso
	v := api.Group("/vale")
	v.Get("/", valeHandler.Current)
	v.Delete("/", valeHandler.Reset)
	v.Post("/items", valeHandler.Reserve)
	v.Put("/items/:index", valeHandler.UpdateQuantity)
	v.Delete("/items/:index", valeHandler.Release)
	v.Post("/generate", valeHandler.Generate)

	// Índice de solicitudes (las rutas fijas antes de /:number)
	regHandler := NewRegistryHandler(deps.ValeSvc)
	reg := api.Group("/registry")
	reg.Get("/", regHandler.List)
	reg.Post("/", regHandler.Register)
	reg.Delete("/", regHandler.Clean)
	reg.Patch("/status", regHandler.SetStatus)
	reg.Post("/reindex", regHandler.Reindex)
	reg.Post("/merge", regHandler.Merge)
	reg.Post("/export", regHandler.Export)
	reg.Get("/:number", regHandler.GetByNumber)
	reg.Patch("/:number", regHandler.Update)

	// Personas
	if deps.PeopleUC != nil {
		people := api.Group("/people")
		for path, role := range map[string]entity.PersonRole{
			"/requesters":      entity.RoleRequester,
			"/warehouse-users": entity.RoleWarehouseUser,
		} {
			h := NewPeopleHandler(deps.PeopleUC, role)
			people.Get(path, h.List)
			people.Post(path, h.Add)
			people.Delete(path+"/:name", h.Remove)
		}
	}
}
