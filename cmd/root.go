package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/promptdeck/promptdeck/core/config"
	coreDB "github.com/promptdeck/promptdeck/core/database"
	domainCache "github.com/promptdeck/promptdeck/domains/cache"
	domainCategory "github.com/promptdeck/promptdeck/domains/category"
	domainCollection "github.com/promptdeck/promptdeck/domains/collection"
	domainHealth "github.com/promptdeck/promptdeck/domains/health"
	domainInference "github.com/promptdeck/promptdeck/domains/inference"
	domainProject "github.com/promptdeck/promptdeck/domains/project"
	domainPrompt "github.com/promptdeck/promptdeck/domains/prompt"
	infraValkey "github.com/promptdeck/promptdeck/infrastructure/valkey"
	"github.com/promptdeck/promptdeck/pkg/utils"
	"github.com/promptdeck/promptdeck/providers"
	"github.com/promptdeck/promptdeck/repository"
	"github.com/promptdeck/promptdeck/usecase"
)

var (
	db       *gorm.DB
	vkClient *infraValkey.Client

	// cacheStore stays nil when the cache is disabled or unreachable; the
	// HTTP layer then runs straight through to the database.
	cacheStore domainCache.Store

	projectUsecase    domainProject.IProjectUsecase
	promptUsecase     domainPrompt.IPromptUsecase
	collectionUsecase domainCollection.ICollectionUsecase
	categoryUsecase   domainCategory.ICategoryUsecase
	cacheUsecase      domainCache.ICacheUsecase
	inferenceUsecase  domainInference.IInferenceUsecase
	healthUsecase     domainHealth.IHealthUsecase
)

var rootCmd = &cobra.Command{
	Use:   "promptdeck",
	Short: "Versioned prompt management API",
	Long: `PromptDeck stores prompt templates with an append-only version history,
groups them by project, collection and category, and runs them against
configured LLM providers over HTTP.`,
}

func init() {
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	if _, err := config.Load(); err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	initFlags()
	cobra.OnInitialize(initApp)
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&config.Global.App.Port,
		"port", "p",
		config.Global.App.Port,
		"port to listen on | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&config.Global.App.Debug,
		"debug", "d",
		config.Global.App.Debug,
		"enable debug logging | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringVarP(
		&config.Global.App.BasePath,
		"base-path", "",
		config.Global.App.BasePath,
		`base path for subpath deployment | example: --base-path="/promptdeck"`,
	)
	rootCmd.PersistentFlags().StringSliceVarP(
		&config.Global.App.TrustedProxies,
		"trusted-proxies", "",
		config.Global.App.TrustedProxies,
		`trusted proxy IP ranges | example: --trusted-proxies="10.0.0.0/8,172.16.0.0/12"`,
	)
	rootCmd.PersistentFlags().StringVarP(
		&config.Global.Database.Driver,
		"db-driver", "",
		config.Global.Database.Driver,
		`database driver, sqlite or postgres | example: --db-driver=postgres`,
	)
	rootCmd.PersistentFlags().BoolVarP(
		&config.Global.Cache.Enabled,
		"cache", "",
		config.Global.Cache.Enabled,
		"enable the read-through response cache | example: --cache=false",
	)
}

func initApp() {
	if config.Global.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := utils.CreateFolder(config.Global.App.StoragePath); err != nil {
		logrus.Errorln(err)
	}

	ctx := context.Background()

	var err error
	db, err = coreDB.NewDatabase(config.Global)
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}
	if err := repository.InitSchema(ctx, db); err != nil {
		logrus.Fatalf("failed to migrate schema: %v", err)
	}

	if config.Global.Cache.Enabled {
		vkClient, err = infraValkey.NewClient(infraValkey.Config{
			Address:   config.Global.Cache.Address,
			Password:  config.Global.Cache.Password,
			DB:        config.Global.Cache.DB,
			KeyPrefix: config.Global.Cache.KeyPrefix,
		})
		if err != nil {
			logrus.Warnf("[CACHE] Valkey unavailable, running without response cache: %v", err)
			vkClient = nil
		} else {
			cacheStore = repository.NewValkeyCacheStore(vkClient)
		}
	}

	promptRepo := repository.NewPromptGormRepository(db)
	catalogRepo := repository.NewCatalogGormRepository(db)

	projectUsecase = usecase.NewProjectService(catalogRepo)
	promptUsecase = usecase.NewPromptService(promptRepo)
	collectionUsecase = usecase.NewCollectionService(catalogRepo)
	categoryUsecase = usecase.NewCategoryService(catalogRepo)
	if cacheStore != nil {
		cacheUsecase = usecase.NewCacheService(cacheStore)
	}

	registry := providers.NewRegistry(
		providers.NewOpenAIProvider(config.Global.Providers.OpenAIAPIKey),
		providers.NewAnthropicProvider(config.Global.Providers.AnthropicAPIKey),
		providers.NewGeminiProvider(config.Global.Providers.GeminiAPIKey),
	)
	modelCatalog := usecase.LoadModelCatalog(config.Global.Providers.ModelRegistryPath)
	inferenceUsecase = usecase.NewInferenceService(registry, promptUsecase, modelCatalog)

	healthUsecase = usecase.NewHealthService(db, vkClient)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp performs a clean shutdown of database and cache connections.
func StopApp() {
	logrus.Info("[APP] Stopping application...")

	if vkClient != nil {
		vkClient.Close()
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	logrus.Info("[APP] Application stopped cleanly.")
}
