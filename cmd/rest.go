package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/promptdeck/promptdeck/core/config"
	"github.com/promptdeck/promptdeck/ui/rest"
	"github.com/promptdeck/promptdeck/ui/rest/middleware"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve the prompt API over HTTP",
	Run:   restServer,
}

func init() {
	rootCmd.AddCommand(restCmd)
}

func restServer(_ *cobra.Command, _ []string) {
	fiberConfig := fiber.Config{
		EnableTrustedProxyCheck: true,
		Network:                 "tcp",
		AppName:                 "PromptDeck " + config.Global.App.Version,
		ServerHeader:            "Hidden",
	}

	if len(config.Global.App.TrustedProxies) > 0 {
		fiberConfig.TrustedProxies = config.Global.App.TrustedProxies
		fiberConfig.ProxyHeader = fiber.HeaderXForwardedFor
	}

	app := fiber.New(fiberConfig)

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(config.Global.App.CorsOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.Recovery())
	app.Use(limiter.New(limiter.Config{
		Max:        1000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	if config.Global.App.Debug {
		app.Use(logger.New())
	}

	// Recovery sits above the cache so a panicking handler never caches a
	// response or sweeps keys for a failed mutation.
	if cacheStore != nil {
		app.Use(middleware.Cache(cacheStore, config.Global.Cache.TTL, config.Global.App.BasePath))
	}

	apiGroup := app.Group(config.Global.App.BasePath + "/v1")

	rest.InitRestHealth(apiGroup, healthUsecase)
	rest.InitRestProject(apiGroup, projectUsecase)
	rest.InitRestPrompt(apiGroup, promptUsecase)
	rest.InitRestCollection(apiGroup, collectionUsecase)
	rest.InitRestCategory(apiGroup, categoryUsecase)
	rest.InitRestInference(apiGroup, inferenceUsecase)
	if cacheUsecase != nil {
		rest.InitRestCache(apiGroup, cacheUsecase)
	}

	apiGroup.All("/*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "API endpoint not found",
			"path":  c.Path(),
		})
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[REST] Termination signal received, shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
		StopApp()
	}()

	if err := app.Listen(":" + config.Global.App.Port); err != nil {
		logrus.Fatalln("Failed to start: ", err.Error())
	}
}
