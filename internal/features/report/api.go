package report

import (
	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	ReportController *ReportController
}

func NewReportApi(reportController *ReportController) *ReportApi {
	return &ReportApi{ReportController: reportController}
}

func (api *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/api/reports")

	group.Post("/generate", api.ReportController.Generate)
	group.Post("/preview", api.ReportController.Preview)
}
