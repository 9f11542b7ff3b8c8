package report

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"grant-crm/internal/features/template"
)

type ReportController struct {
	ReportService ReportService
}

func NewReportController(reportService ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// Generate godoc
func (c *ReportController) Generate(ctx *fiber.Ctx) error {
	var cfg Config
	if err := ctx.BodyParser(&cfg); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	artifact, err := c.ReportService.Run(ctx.Context(), cfg)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedFormat):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, template.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	ctx.Set("Content-Type", artifact.ContentType)
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", artifact.Filename))
	return ctx.Send(artifact.Data)
}

// Preview godoc
func (c *ReportController) Preview(ctx *fiber.Ctx) error {
	var cfg Config
	if err := ctx.BodyParser(&cfg); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	table, err := c.ReportService.Preview(ctx.Context(), cfg)
	if err != nil {
		if errors.Is(err, template.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(table)
}
