package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"jewelflow/cmd"
	"jewelflow/internal/adapters/out/evidencestore"
	"jewelflow/internal/adapters/out/notifier"
	"jewelflow/internal/adapters/out/postgres/evidencerepo"
	"jewelflow/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	publisher, err := notifier.NewRedisEventPublisher(notifier.Config{
		Host:         configs.RedisHost,
		Port:         configs.RedisPort,
		Password:     configs.RedisPassword,
		DB:           configs.RedisDB,
		Channel:      configs.EventChannel,
		AlertChannel: configs.AlertChannel,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	storage, err := evidencestore.NewS3EvidenceStore(evidencestore.Config{
		Endpoint:  configs.StorageEndpoint,
		Region:    configs.StorageRegion,
		Bucket:    configs.StorageBucket,
		AccessKey: configs.StorageAccessKey,
		SecretKey: configs.StorageSecretKey,
		UseSSL:    configs.StorageUseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to create evidence storage: %v", err)
	}
	if err = storage.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("Failed to prepare evidence bucket: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, publisher, storage, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		RedisHost:     goDotEnvVariable("REDIS_HOST"),
		RedisPort:     intEnvVariable("REDIS_PORT", 6379),
		RedisPassword: goDotEnvVariable("REDIS_PASSWORD"),
		RedisDB:       intEnvVariable("REDIS_DB", 0),
		EventChannel:  goDotEnvVariable("EVENT_CHANNEL"),
		AlertChannel:  goDotEnvVariable("ALERT_CHANNEL"),

		StorageEndpoint:  goDotEnvVariable("STORAGE_ENDPOINT"),
		StorageRegion:    goDotEnvVariable("STORAGE_REGION"),
		StorageBucket:    goDotEnvVariable("STORAGE_BUCKET"),
		StorageAccessKey: goDotEnvVariable("STORAGE_ACCESS_KEY"),
		StorageSecretKey: goDotEnvVariable("STORAGE_SECRET_KEY"),
		StorageUseSSL:    goDotEnvVariable("STORAGE_USE_SSL") == "true",

		HighPriorityDays:   intEnvVariable("HIGH_PRIORITY_DAYS", 0),
		MediumPriorityDays: intEnvVariable("MEDIUM_PRIORITY_DAYS", 0),
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

func intEnvVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	createDbIfNotExists(configs)

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderSequenceDTO{},
		&evidencerepo.EvidenceDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func createDbIfNotExists(configs cmd.Config) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBSslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", configs.DBName).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check database existence: %v", err)
	}

	if !exists {
		if _, err = db.Exec("CREATE DATABASE " + configs.DBName); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := app.CreateHTTPServer()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
