package internal

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"voyago/internal/config"
	"voyago/internal/managers"
	"voyago/internal/routing"
)

const envFile = ".env"

// Init loads the configuration, wires the managers and starts the HTTP
// server. It blocks until the server stops.
func Init() {
	if err := godotenv.Load(envFile); err != nil {
		log.Info("No .env file found, using environment variables from system")
	} else {
		log.Info("Loaded environment variables from .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	setLogLevel(cfg.Server.LogLevel)

	pool := initializeDatabase(cfg.Database)
	defer pool.Close()

	databaseMgr := managers.NewDatabaseManager(pool)
	mailMgr := managers.NewMailManager(cfg.Mail, cfg.Server.Environment)
	jwtMgr := managers.NewJWTManager(cfg.JWT, databaseMgr)
	placesMgr, err := managers.NewPlacesManager(cfg.Places)
	if err != nil {
		log.Fatal("Error initializing places manager: ", err)
	}

	router := routing.InitRouter(cfg, databaseMgr, mailMgr, jwtMgr, placesMgr)
	log.Info("Initialized router")

	// Handle interrupt signal gracefully
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)

		<-c
		log.Info("Server shutting down...")
		os.Exit(0)
	}()

	log.Infof("Starting server on %s...", cfg.Server.Addr())
	if err := router.Run(cfg.Server.Addr()); err != nil {
		log.Fatal("Error starting server: ", err)
	}
}

func initializeDatabase(dbConfig config.DatabaseConfig) *pgxpool.Pool {
	log.Info("Initializing database")

	poolConfig, err := pgxpool.ParseConfig(dbConfig.DSN())
	if err != nil {
		log.Fatal("error configuring database: ", err)
	}

	poolConfig.MinConns = 5
	poolConfig.MaxConns = 30
	poolConfig.MaxConnIdleTime = time.Minute * 2
	poolConfig.HealthCheckPeriod = time.Minute * 1

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatal("error connecting to database: ", err)
	}
	log.Info("Connected to database")
	return pool
}

func setLogLevel(logLevel string) {
	switch logLevel {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	case "FATAL":
		log.SetLevel(log.FatalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	log.SetReportCaller(true)
	log.SetOutput(os.Stdout)
}
