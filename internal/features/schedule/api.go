package schedule

import (
	"github.com/gofiber/fiber/v2"
)

type ScheduleApi struct {
	ScheduleController *ScheduleController
}

func NewScheduleApi(scheduleController *ScheduleController) *ScheduleApi {
	return &ScheduleApi{ScheduleController: scheduleController}
}

func (api *ScheduleApi) Setup(app *fiber.App) {
	group := app.Group("/api/report-schedules")

	group.Post("/", api.ScheduleController.Save)
	group.Get("/", api.ScheduleController.List)
	group.Delete("/:id", api.ScheduleController.Delete)
	group.Post("/:id/run", api.ScheduleController.RunNow)
}
