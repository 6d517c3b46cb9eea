package rest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	domainInference "github.com/promptdeck/promptdeck/domains/inference"
	"github.com/promptdeck/promptdeck/pkg/utils"
)

type Inference struct {
	Service domainInference.IInferenceUsecase
}

func InitRestInference(app fiber.Router, service domainInference.IInferenceUsecase) Inference {
	rest := Inference{Service: service}
	app.Post("/inference", rest.Run)
	app.Get("/inference/models", rest.Models)
	return rest
}

func (controller *Inference) Run(c *fiber.Ctx) error {
	var request domainInference.RunRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	if request.Stream {
		return controller.runStream(c, request)
	}

	response, err := controller.Service.Run(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success run inference",
		Results: response,
	})
}

type streamEvent struct {
	Delta string `json:"delta"`
}

// runStream replies with server-sent events. The body writer outlives the
// handler, so the stream is driven by its own cancellable context rather
// than the request's; cancelling when the writer exits stops the provider
// stream even when the client disconnects mid-response.
func (controller *Inference) runStream(c *fiber.Ctx, request domainInference.RunRequest) error {
	ctx, cancel := context.WithCancel(context.Background())
	handle, err := controller.Service.RunStream(ctx, request)
	if err != nil {
		cancel()
	}
	utils.PanicIfNeeded(err)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Prompt-Version", fmt.Sprintf("%d", handle.PromptVersion))

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for chunk := range handle.Chunks {
			payload, err := json.Marshal(streamEvent{Delta: chunk})
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				logrus.Debugf("[INFERENCE] Client dropped stream: %v", err)
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		_ = w.Flush()
	}))

	return nil
}

func (controller *Inference) Models(c *fiber.Ctx) error {
	catalog, err := controller.Service.Models(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Success fetch models",
		Results: catalog,
	})
}
