package preset

import (
	"github.com/gofiber/fiber/v2"
)

type PresetApi struct {
	PresetController *PresetController
}

func NewPresetApi(presetController *PresetController) *PresetApi {
	return &PresetApi{PresetController: presetController}
}

func (api *PresetApi) Setup(app *fiber.App) {
	group := app.Group("/api/filter-presets")

	group.Post("/", api.PresetController.Save)
	group.Get("/entity/:entity", api.PresetController.ListByEntity)
	group.Get("/:id/apply", api.PresetController.Apply)
	group.Delete("/:id", api.PresetController.Delete)
}
