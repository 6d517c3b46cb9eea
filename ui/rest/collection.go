package rest

import (
	"github.com/gofiber/fiber/v2"

	domainCollection "github.com/promptdeck/promptdeck/domains/collection"
	"github.com/promptdeck/promptdeck/pkg/utils"
)

type Collection struct {
	Service domainCollection.ICollectionUsecase
}

func InitRestCollection(app fiber.Router, service domainCollection.ICollectionUsecase) Collection {
	rest := Collection{Service: service}

	app.Post("/collections", rest.Create)
	app.Get("/collections", rest.List)
	app.Get("/collections/:ref", rest.Get)
	app.Put("/collections/:ref", rest.Update)
	app.Delete("/collections/:ref", rest.Delete)

	app.Post("/collections/:ref/prompts", rest.AddPrompts)
	app.Delete("/collections/:ref/prompts", rest.RemovePrompts)

	return rest
}

func (controller *Collection) Create(c *fiber.Ctx) error {
	var request domainCollection.CreateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	collection, err := controller.Service.Create(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.Status(201).JSON(utils.ResponseData{
		Status:  201,
		Code:    "SUCCESS",
		Message: "Success create collection",
		Results: collection,
	})
}

func (controller *Collection) List(c *fiber.Ctx) error {
	collections, err := controller.Service.List(c.UserContext(), projectRef(c))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch collections",
		Results: collections,
	})
}

func (controller *Collection) Get(c *fiber.Ctx) error {
	collection, err := controller.Service.Get(c.UserContext(), projectRef(c), c.Params("ref"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch collection",
		Results: collection,
	})
}

func (controller *Collection) Update(c *fiber.Ctx) error {
	var request domainCollection.UpdateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	collection, err := controller.Service.Update(c.UserContext(), projectRef(c), c.Params("ref"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update collection",
		Results: collection,
	})
}

func (controller *Collection) Delete(c *fiber.Ctx) error {
	err := controller.Service.Delete(c.UserContext(), projectRef(c), c.Params("ref"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete collection",
	})
}

func (controller *Collection) AddPrompts(c *fiber.Ctx) error {
	var request domainCollection.MembershipRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = controller.Service.AddPrompts(c.UserContext(), projectRef(c), c.Params("ref"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success add prompts to collection",
	})
}

func (controller *Collection) RemovePrompts(c *fiber.Ctx) error {
	var request domainCollection.MembershipRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = controller.Service.RemovePrompts(c.UserContext(), projectRef(c), c.Params("ref"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success remove prompts from collection",
	})
}
