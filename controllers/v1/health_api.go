package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"sarah-testing/controllers"
	"sarah-testing/db"
	apimodels "sarah-testing/models/api"
)

type healthApiController struct {
	controllers.BaseAPIController
	ping func() error
}

func InitHealthRouters(app *fiber.App) {
	controller := healthApiController{ping: db.PingDB}
	app.Get("health", controller.health)
}

// @Summary Проверка состояния
// @Tags Служебное
// @Description Проверка доступности БД
// @Success 200 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /health [get]
func (c *healthApiController) health(ctx *fiber.Ctx) error {
	if err := c.ping(); err != nil {
		c.GetLogger(ctx).WithError(err).Error("БД недоступна")
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("БД недоступна"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fiber.Map{"database": "ok"}))
}
