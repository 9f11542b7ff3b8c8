package template

import (
	"github.com/gofiber/fiber/v2"
)

type TemplateApi struct {
	TemplateController *TemplateController
}

func NewTemplateApi(templateController *TemplateController) *TemplateApi {
	return &TemplateApi{TemplateController: templateController}
}

func (api *TemplateApi) Setup(app *fiber.App) {
	group := app.Group("/api/report-templates")

	group.Get("/", api.TemplateController.List)
	group.Get("/:id", api.TemplateController.Get)
	group.Post("/", api.TemplateController.Save)
	group.Put("/:id", api.TemplateController.Save)
	group.Delete("/:id", api.TemplateController.Delete)
	group.Post("/:id/duplicate", api.TemplateController.Duplicate)
}
