package rest

import (
	"github.com/gofiber/fiber/v2"

	domainCache "github.com/promptdeck/promptdeck/domains/cache"
	"github.com/promptdeck/promptdeck/pkg/utils"
)

type Cache struct {
	Service domainCache.ICacheUsecase
}

func InitRestCache(app fiber.Router, service domainCache.ICacheUsecase) Cache {
	rest := Cache{Service: service}
	app.Get("/cache/stats", rest.GetStats)
	app.Post("/cache/clear", rest.Clear)
	return rest
}

func (controller *Cache) GetStats(c *fiber.Ctx) error {
	stats, err := controller.Service.GetStats(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch cache stats",
		Results: stats,
	})
}

func (controller *Cache) Clear(c *fiber.Ctx) error {
	removed, err := controller.Service.Clear(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success clear cache",
		Results: fiber.Map{"removed": removed},
	})
}
