// Lumen Core - Lighting Preset Service
//
// This is the main entry point for the Lumen Core application. Lumen
// Core persists a library of lighting presets organised into categories
// and applies them to lights over MQTT, driven by commands arriving via
// HTTP or the MQTT service topic.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lumenhaus/lumen-core/migrations"

	"github.com/lumenhaus/lumen-core/internal/api"
	"github.com/lumenhaus/lumen-core/internal/command"
	"github.com/lumenhaus/lumen-core/internal/infrastructure/config"
	"github.com/lumenhaus/lumen-core/internal/infrastructure/database"
	"github.com/lumenhaus/lumen-core/internal/infrastructure/influxdb"
	"github.com/lumenhaus/lumen-core/internal/infrastructure/logging"
	"github.com/lumenhaus/lumen-core/internal/infrastructure/mqtt"
	"github.com/lumenhaus/lumen-core/internal/lights"
	"github.com/lumenhaus/lumen-core/internal/preset"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for
// testability. Returning an error allows main to handle exit codes
// consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Lumen Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Initialise preset store
	store := preset.NewStore(preset.NewSQLiteRepository(db.DB))
	store.SetLogger(log)
	if loadErr := store.Load(ctx); loadErr != nil {
		return fmt.Errorf("loading preset store: %w", loadErr)
	}
	doc, err := store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("reading preset store: %w", err)
	}
	log.Info("preset store initialised", "categories", len(doc.Categories))

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	mqttClient.SetLogger(log)
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// WebSocket hub is shared between the API server and the command
	// layer so mutations can broadcast document changes.
	hub := api.NewHub(log)
	go hub.Run(ctx)

	// Register preset commands
	qos := byte(cfg.MQTT.QoS) // #nosec G115 -- validated to 0..2 by config
	router := command.NewRouter()
	router.SetLogger(log)

	deps := command.Deps{
		Store:  store,
		Lights: lights.NewMQTTController(mqttClient, qos),
		Events: &eventFanout{hub: hub, mqtt: mqttClient, qos: qos, log: log},
		Logger: log,
	}
	if influxClient != nil {
		deps.Telemetry = influxClient
	}
	if regErr := command.RegisterAll(router, deps); regErr != nil {
		return fmt.Errorf("registering commands: %w", regErr)
	}
	log.Info("commands registered", "commands", router.Commands())

	// MQTT command transport
	transport := command.NewMQTTTransport(router, mqttClient, qos)
	transport.SetLogger(log)
	if startErr := transport.Start(); startErr != nil {
		return fmt.Errorf("starting MQTT command transport: %w", startErr)
	}

	// HTTP API server
	server, err := api.New(api.Deps{
		Config:      cfg.API,
		Logger:      log,
		Router:      router,
		ExternalHub: hub,
		Version:     version,
		Checks: map[string]api.HealthChecker{
			"database": db,
			"mqtt":     mqttClient,
		},
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT
	// 4. Database

	log.Info("Lumen Core stopped")
	return nil
}

// eventFanout delivers core events to WebSocket clients and mirrors
// them onto the MQTT event topic for other services on the bus.
type eventFanout struct {
	hub  *api.Hub
	mqtt *mqtt.Client
	qos  byte
	log  *logging.Logger
}

func (f *eventFanout) Broadcast(event string, payload any) {
	f.hub.Broadcast(event, payload)

	data, err := json.Marshal(payload)
	if err != nil {
		f.log.Error("encoding event payload", "event", event, "error", err)
		return
	}
	if err := f.mqtt.Publish(mqtt.Topics{}.Event(event), data, f.qos, false); err != nil {
		f.log.Warn("publishing event to MQTT", "event", event, "error", err)
	}
}

// getConfigPath returns the configuration file path.
// Uses LUMEN_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("LUMEN_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}
	return nil
}
