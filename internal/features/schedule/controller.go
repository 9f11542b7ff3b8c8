package schedule

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"grant-crm/internal/features/report"
	"grant-crm/internal/features/template"
)

type ScheduleController struct {
	ScheduleService ScheduleService
}

func NewScheduleController(scheduleService ScheduleService) *ScheduleController {
	return &ScheduleController{ScheduleService: scheduleService}
}

// Save godoc
func (c *ScheduleController) Save(ctx *fiber.Ctx) error {
	var schedule ReportSchedule
	if err := ctx.BodyParser(&schedule); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.ScheduleService.SaveSchedule(ctx.Context(), &schedule); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(schedule)
}

// List godoc
func (c *ScheduleController) List(ctx *fiber.Ctx) error {
	schedules, err := c.ScheduleService.ListSchedules(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(schedules)
}

// Delete godoc
func (c *ScheduleController) Delete(ctx *fiber.Ctx) error {
	if err := c.ScheduleService.DeleteSchedule(ctx.Context(), ctx.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// RunNow godoc
func (c *ScheduleController) RunNow(ctx *fiber.Ctx) error {
	path, err := c.ScheduleService.RunNow(ctx.Context(), ctx.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, template.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, report.ErrUnsupportedFormat):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return ctx.JSON(fiber.Map{"path": path})
}
