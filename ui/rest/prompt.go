package rest

import (
	"github.com/gofiber/fiber/v2"

	domainPrompt "github.com/promptdeck/promptdeck/domains/prompt"
	pkgError "github.com/promptdeck/promptdeck/pkg/error"
	"github.com/promptdeck/promptdeck/pkg/utils"
)

type Prompt struct {
	Service domainPrompt.IPromptUsecase
}

func InitRestPrompt(app fiber.Router, service domainPrompt.IPromptUsecase) Prompt {
	rest := Prompt{Service: service}

	app.Post("/prompts", rest.Create)
	app.Get("/prompts", rest.List)
	app.Get("/prompts/:ref", rest.Get)
	app.Put("/prompts/:ref", rest.Update)
	app.Delete("/prompts/:ref", rest.Delete)

	app.Post("/prompts/:ref/versions", rest.CreateVersion)
	app.Get("/prompts/:ref/versions", rest.ListVersions)
	app.Get("/prompts/:ref/versions/:number", rest.GetVersion)
	app.Delete("/prompts/:ref/versions/:number", rest.DeleteVersion)

	app.Get("/prompts/:ref/versions/:number/tags", rest.ListTags)
	app.Post("/prompts/:ref/versions/:number/tags", rest.CreateTag)
	app.Delete("/prompts/:ref/versions/:number/tags/:tag", rest.DeleteTag)
	app.Get("/prompts/:ref/tags/:tag", rest.ResolveTag)

	return rest
}

// projectRef pulls the optional project scope off the query string. UUID
// prompt references resolve without it, slugs need it.
func projectRef(c *fiber.Ctx) string {
	if id := c.Query("project_id"); id != "" {
		return id
	}
	return c.Query("project_slug")
}

func versionNumber(c *fiber.Ctx) int {
	number, err := c.ParamsInt("number")
	if err != nil || number < 1 {
		panic(pkgError.ValidationError("version number must be a positive integer"))
	}
	return number
}

func (controller *Prompt) Create(c *fiber.Ctx) error {
	var request domainPrompt.CreateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	prompt, err := controller.Service.Create(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.Status(201).JSON(utils.ResponseData{
		Status:  201,
		Code:    "SUCCESS",
		Message: "Success create prompt",
		Results: prompt,
	})
}

func (controller *Prompt) List(c *fiber.Ctx) error {
	prompts, err := controller.Service.List(c.UserContext(), projectRef(c))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch prompts",
		Results: prompts,
	})
}

func (controller *Prompt) Get(c *fiber.Ctx) error {
	prompt, err := controller.Service.Get(c.UserContext(), projectRef(c), c.Params("ref"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch prompt",
		Results: prompt,
	})
}

func (controller *Prompt) Update(c *fiber.Ctx) error {
	var request domainPrompt.UpdateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	prompt, err := controller.Service.Update(c.UserContext(), projectRef(c), c.Params("ref"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success update prompt",
		Results: prompt,
	})
}

func (controller *Prompt) Delete(c *fiber.Ctx) error {
	err := controller.Service.Delete(c.UserContext(), projectRef(c), c.Params("ref"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete prompt",
	})
}

func (controller *Prompt) CreateVersion(c *fiber.Ctx) error {
	var request domainPrompt.CreateVersionRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	version, err := controller.Service.CreateVersion(c.UserContext(), projectRef(c), c.Params("ref"), request)
	utils.PanicIfNeeded(err)

	return c.Status(201).JSON(utils.ResponseData{
		Status:  201,
		Code:    "SUCCESS",
		Message: "Success create version",
		Results: version,
	})
}

func (controller *Prompt) ListVersions(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	versions, err := controller.Service.ListVersions(c.UserContext(), projectRef(c), c.Params("ref"), skip, limit)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch versions",
		Results: versions,
	})
}

func (controller *Prompt) GetVersion(c *fiber.Ctx) error {
	version, err := controller.Service.GetVersion(c.UserContext(), projectRef(c), c.Params("ref"), versionNumber(c))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch version",
		Results: version,
	})
}

func (controller *Prompt) DeleteVersion(c *fiber.Ctx) error {
	version, err := controller.Service.DeleteVersion(c.UserContext(), projectRef(c), c.Params("ref"), versionNumber(c))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete version",
		Results: version,
	})
}

func (controller *Prompt) ListTags(c *fiber.Ctx) error {
	tags, err := controller.Service.ListTags(c.UserContext(), projectRef(c), c.Params("ref"), versionNumber(c))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch tags",
		Results: tags,
	})
}

func (controller *Prompt) CreateTag(c *fiber.Ctx) error {
	var request domainPrompt.CreateTagRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	tag, err := controller.Service.CreateTag(c.UserContext(), projectRef(c), c.Params("ref"), versionNumber(c), request)
	utils.PanicIfNeeded(err)

	return c.Status(201).JSON(utils.ResponseData{
		Status:  201,
		Code:    "SUCCESS",
		Message: "Success create tag",
		Results: tag,
	})
}

func (controller *Prompt) DeleteTag(c *fiber.Ctx) error {
	err := controller.Service.DeleteTag(c.UserContext(), projectRef(c), c.Params("ref"), versionNumber(c), c.Params("tag"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success delete tag",
	})
}

func (controller *Prompt) ResolveTag(c *fiber.Ctx) error {
	version, err := controller.Service.ResolveTag(c.UserContext(), projectRef(c), c.Params("ref"), c.Params("tag"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success resolve tag",
		Results: version,
	})
}
