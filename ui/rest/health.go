package rest

import (
	"github.com/gofiber/fiber/v2"

	domainHealth "github.com/promptdeck/promptdeck/domains/health"
	"github.com/promptdeck/promptdeck/pkg/utils"
)

type Health struct {
	Service domainHealth.IHealthUsecase
}

func InitRestHealth(app fiber.Router, service domainHealth.IHealthUsecase) Health {
	rest := Health{Service: service}
	app.Get("/health", rest.Status)
	return rest
}

func (controller *Health) Status(c *fiber.Ctx) error {
	status, err := controller.Service.Status(c.UserContext())
	utils.PanicIfNeeded(err)

	code := 200
	if status.Status != "ok" {
		code = 503
	}
	return c.Status(code).JSON(utils.ResponseData{
		Status:  code,
		Code:    "SUCCESS",
		Message: "Health status retrieved",
		Results: status,
	})
}
