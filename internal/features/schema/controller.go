package schema

import (
	"github.com/gofiber/fiber/v2"
)

// OperatorSource supplies the config-time operator rules for a field type.
// Implemented by the filter package; injected here to keep schema a leaf.
type OperatorSource interface {
	OperatorNamesFor(fieldType FieldType, multiSelect bool) []string
	DefaultOperatorName(fieldType FieldType, multiSelect, rangeContext bool) string
	DefaultValueFor(fieldType FieldType, multiSelect bool) any
}

type SchemaController struct {
	Operators OperatorSource
}

func NewSchemaController(operators OperatorSource) *SchemaController {
	return &SchemaController{Operators: operators}
}

// ListEntities godoc
func (c *SchemaController) ListEntities(ctx *fiber.Ctx) error {
	return ctx.JSON(EntityTypes())
}

// ListFields godoc
func (c *SchemaController) ListFields(ctx *fiber.Ctx) error {
	entity := EntityType(ctx.Params("entity"))
	return ctx.JSON(FieldsFor(entity))
}

// FieldOperators godoc
func (c *SchemaController) FieldOperators(ctx *fiber.Ctx) error {
	entity := EntityType(ctx.Params("entity"))
	field, ok := FieldByID(entity, ctx.Params("field"))
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Field not found"})
	}

	rangeContext := ctx.QueryBool("range", false)
	return ctx.JSON(fiber.Map{
		"operators":        c.Operators.OperatorNamesFor(field.FieldType, field.MultiSelect),
		"default_operator": c.Operators.DefaultOperatorName(field.FieldType, field.MultiSelect, rangeContext),
		"default_value":    c.Operators.DefaultValueFor(field.FieldType, field.MultiSelect),
	})
}
