package rest

import (
	"github.com/gofiber/fiber/v2"

	domainProject "github.com/promptdeck/promptdeck/domains/project"
	"github.com/promptdeck/promptdeck/pkg/utils"
)

type Project struct {
	Service domainProject.IProjectUsecase
}

func InitRestProject(app fiber.Router, service domainProject.IProjectUsecase) Project {
	rest := Project{Service: service}
	app.Post("/projects", rest.Create)
	app.Get("/projects", rest.List)
	app.Get("/projects/:ref", rest.Get)
	app.Put("/projects/:ref", rest.Update)
	app.Delete("/projects/:ref", rest.Delete)
	return rest
}

func (controller *Project) Create(c *fiber.Ctx) error {
	var request domainProject.CreateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	project, err := controller.Service.Create(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.Status(201).JSON(utils.ResponseData{
		Status:  201,
		Code:    "SUCCESS",
		Message: "Success create project",
		Results: project,
	})
}

func (controller *Project) List(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	projects, err := controller.Service.List(c.UserContext(), skip, limit)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch projects",
		Results: projects,
	})
}

func (controller *Project) Get(c *fiber.Ctx) error {
	project, err := controller.Service.Get(c.UserContext(), c.Params("ref"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch project",
		Results: project,
	})
}

func (controller *Project) Update(c *fiber.Ctx) error {
	var request domainProject.UpdateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	project, err := controller.Service.Update(c.UserContext(), c.Params("ref"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update project",
		Results: project,
	})
}

func (controller *Project) Delete(c *fiber.Ctx) error {
	err := controller.Service.Delete(c.UserContext(), c.Params("ref"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete project",
	})
}
