package preset

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"grant-crm/internal/features/filter"
	"grant-crm/internal/features/schema"
)

type PresetController struct {
	PresetService PresetService
}

func NewPresetController(presetService PresetService) *PresetController {
	return &PresetController{PresetService: presetService}
}

// Save godoc
func (c *PresetController) Save(ctx *fiber.Ctx) error {
	var preset FilterPreset
	if err := ctx.BodyParser(&preset); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.PresetService.SavePreset(ctx.Context(), &preset); err != nil {
		if errors.Is(err, filter.ErrUnsupportedOperator) || errors.Is(err, filter.ErrMaxNestingExceeded) || errors.Is(err, filter.ErrUnknownField) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(preset)
}

// ListByEntity godoc
func (c *PresetController) ListByEntity(ctx *fiber.Ctx) error {
	entity := schema.EntityType(ctx.Params("entity"))
	presets, err := c.PresetService.PresetsByEntityType(ctx.Context(), entity)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(presets)
}

// Delete godoc
func (c *PresetController) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := c.PresetService.DeletePreset(ctx.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Preset not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// Apply godoc
func (c *PresetController) Apply(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	preset, err := c.PresetService.GetPreset(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Preset not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	group, err := c.PresetService.ApplyPreset(preset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(group)
}
