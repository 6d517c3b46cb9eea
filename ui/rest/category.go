package rest

import (
	"github.com/gofiber/fiber/v2"

	domainCategory "github.com/promptdeck/promptdeck/domains/category"
	"github.com/promptdeck/promptdeck/pkg/utils"
)

type Category struct {
	Service domainCategory.ICategoryUsecase
}

func InitRestCategory(app fiber.Router, service domainCategory.ICategoryUsecase) Category {
	rest := Category{Service: service}

	app.Post("/categories", rest.Create)
	app.Get("/categories", rest.List)
	app.Get("/categories/:ref", rest.Get)
	app.Put("/categories/:ref", rest.Update)
	app.Delete("/categories/:ref", rest.Delete)

	app.Post("/categories/:ref/prompts", rest.AddPrompts)
	app.Delete("/categories/:ref/prompts", rest.RemovePrompts)

	return rest
}

func (controller *Category) Create(c *fiber.Ctx) error {
	var request domainCategory.CreateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	category, err := controller.Service.Create(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.Status(201).JSON(utils.ResponseData{
		Status:  201,
		Code:    "SUCCESS",
		Message: "Success create category",
		Results: category,
	})
}

func (controller *Category) List(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	categories, err := controller.Service.List(c.UserContext(), skip, limit)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch categories",
		Results: categories,
	})
}

func (controller *Category) Get(c *fiber.Ctx) error {
	category, err := controller.Service.Get(c.UserContext(), c.Params("ref"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch category",
		Results: category,
	})
}

func (controller *Category) Update(c *fiber.Ctx) error {
	var request domainCategory.UpdateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	category, err := controller.Service.Update(c.UserContext(), c.Params("ref"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update category",
		Results: category,
	})
}

func (controller *Category) Delete(c *fiber.Ctx) error {
	err := controller.Service.Delete(c.UserContext(), c.Params("ref"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete category",
	})
}

func (controller *Category) AddPrompts(c *fiber.Ctx) error {
	var request domainCategory.MembershipRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = controller.Service.AddPrompts(c.UserContext(), c.Params("ref"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success add prompts to category",
	})
}

func (controller *Category) RemovePrompts(c *fiber.Ctx) error {
	var request domainCategory.MembershipRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = controller.Service.RemovePrompts(c.UserContext(), c.Params("ref"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success remove prompts from category",
	})
}
