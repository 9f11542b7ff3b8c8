package template

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"grant-crm/internal/features/filter"
)

type TemplateController struct {
	TemplateService TemplateService
}

func NewTemplateController(templateService TemplateService) *TemplateController {
	return &TemplateController{TemplateService: templateService}
}

// List godoc
func (c *TemplateController) List(ctx *fiber.Ctx) error {
	templates, err := c.TemplateService.ListTemplates(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(templates)
}

// Get godoc
func (c *TemplateController) Get(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	template, err := c.TemplateService.GetTemplate(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(template)
}

// Save godoc
func (c *TemplateController) Save(ctx *fiber.Ctx) error {
	var template ReportTemplate
	if err := ctx.BodyParser(&template); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if id := ctx.Params("id"); id != "" && template.ID.IsZero() {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template id"})
		}
		template.ID = oid
	}

	if err := c.TemplateService.SaveTemplate(ctx.Context(), &template); err != nil {
		switch {
		case errors.Is(err, ErrSystemTemplateImmutable):
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, filter.ErrUnsupportedOperator),
			errors.Is(err, filter.ErrMaxNestingExceeded),
			errors.Is(err, filter.ErrUnknownField):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return ctx.Status(fiber.StatusCreated).JSON(template)
}

// Delete godoc
func (c *TemplateController) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := c.TemplateService.DeleteTemplate(ctx.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrSystemTemplateImmutable):
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// Duplicate godoc
func (c *TemplateController) Duplicate(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	var body struct {
		Name string `json:"name"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if body.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	dup, err := c.TemplateService.DuplicateTemplate(ctx.Context(), id, body.Name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(dup)
}
