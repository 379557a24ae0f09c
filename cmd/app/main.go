package main

import (
	"fmt"
	"log/slog"
	"os"

	"parcelflow/cmd"
	httpserver "parcelflow/internal/adapters/in/http"
	"parcelflow/internal/adapters/out/postgres/auditrepo"
	"parcelflow/internal/adapters/out/postgres/notificationrepo"
	"parcelflow/internal/adapters/out/postgres/parcelrepo"
	"parcelflow/internal/adapters/out/postgres/trackingrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDatabase(configs)
	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	if jobManager := app.CreateJobManager(); jobManager != nil {
		if err := jobManager.StartAll(); err != nil {
			log.Fatalf("Failed to start jobs: %v", err)
		}
		defer jobManager.StopAll()
	}

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:             goDotEnvVariable("REDIS_ADDR"),
		SMTPHost:              goDotEnvVariable("SMTP_HOST"),
		SMTPPort:              goDotEnvVariable("SMTP_PORT"),
		SMTPUsername:          goDotEnvVariable("SMTP_USERNAME"),
		SMTPPassword:          goDotEnvVariable("SMTP_PASSWORD"),
		SMTPFrom:              goDotEnvVariable("SMTP_FROM"),
		SMSWebhookURL:         goDotEnvVariable("SMS_WEBHOOK_URL"),
		SMSWebhookToken:       goDotEnvVariable("SMS_WEBHOOK_TOKEN"),
		TrackingRetentionDays: goDotEnvVariable("TRACKING_RETENTION_DAYS"),
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

func mustConnectDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&parcelrepo.StatusHistoryDTO{},
		&trackingrepo.TrackingPointDTO{},
		&notificationrepo.NotificationDTO{},
		&notificationrepo.NotificationLogDTO{},
		&auditrepo.AuditLogDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpserver.NewServer(httpserver.Handlers{
		CreateBooking:     app.CreateCreateBookingCommandHandler(),
		ChangeStatus:      app.CreateChangeParcelStatusCommandHandler(),
		AssignAgent:       app.CreateAssignParcelAgentCommandHandler(),
		RecordTracking:    app.CreateRecordTrackingPointCommandHandler(),
		SoftDelete:        app.CreateSoftDeleteParcelCommandHandler(),
		ListParcels:       app.CreateListCustomerParcelsQueryHandler(),
		StatusHistory:     app.CreateGetStatusHistoryQueryHandler(),
		TrackingFeed:      app.CreateGetTrackingFeedQueryHandler(),
		ByTrackingCode:    app.CreateGetParcelByTrackingCodeQueryHandler(),
		ListNotifications: app.CreateListUserNotificationsQueryHandler(),
		NotificationInbox: app.Notifier(),
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
