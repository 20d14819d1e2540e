package main

import (
	"fmt"
	"log/slog"
	"os"

	"orderdesk/cmd"
	httpadapter "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/adapters/out/actionlog"
	"orderdesk/internal/adapters/out/identity"
	"orderdesk/internal/adapters/out/postgres/auditrepo"
	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/adapters/out/postgres/stockrepo"
	"orderdesk/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	queue, err := actionlog.NewBadgerActionQueue(actionlog.Config{Path: configs.ActionQueuePath})
	if err != nil {
		log.Fatalf("Error opening action queue: %v", err)
	}
	defer queue.Close()

	resolver, err := identity.NewStaticTokenResolver(configs.AuthTokens)
	if err != nil {
		log.Fatalf("Error parsing auth tokens: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, queue)

	jobManager := jobs.NewJobManager(app.CreateReplayPendingActionsCommandHandler(), slog.Default())
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, resolver, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT"),
		DBHost:          goDotEnvVariable("DB_HOST"),
		DBPort:          goDotEnvVariable("DB_PORT"),
		DBUser:          goDotEnvVariable("DB_USER"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD"),
		DBName:          goDotEnvVariable("DB_NAME"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE"),
		ActionQueuePath: goDotEnvVariable("ACTION_QUEUE_PATH"),
		AuthTokens:      goDotEnvVariable("AUTH_TOKENS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&stockrepo.UnitDTO{},
		&stockrepo.MovementDTO{},
		&auditrepo.EntryDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, resolver *identity.StaticTokenResolver, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderCommandHandler(),
		app.CreateDeleteOrderCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateOfflineConfirmer(),
		app.CreateArriveStockUnitCommandHandler(),
		app.CreateDeleteStockUnitCommandHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetStockMovementsQueryHandler(),
	)
	server.RegisterRoutes(e, resolver)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
