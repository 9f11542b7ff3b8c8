package schema

import (
	"github.com/gofiber/fiber/v2"
)

type SchemaApi struct {
	SchemaController *SchemaController
}

func NewSchemaApi(schemaController *SchemaController) *SchemaApi {
	return &SchemaApi{SchemaController: schemaController}
}

func (api *SchemaApi) Setup(app *fiber.App) {
	group := app.Group("/api/schema")

	group.Get("/entities", api.SchemaController.ListEntities)
	group.Get("/:entity/fields", api.SchemaController.ListFields)
	group.Get("/:entity/fields/:field/operators", api.SchemaController.FieldOperators)
}
