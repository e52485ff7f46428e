package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aquaponics/internal/handlers"
	"aquaponics/internal/ingest"
	"aquaponics/internal/logger"
	"aquaponics/internal/mqttclient"
	"aquaponics/internal/repository"
	"aquaponics/internal/server"
	"aquaponics/internal/service"

	"github.com/spf13/viper"
)

const defaultSweepInterval = time.Minute

func main() {
	// load config.yml first, the log level comes from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log_level"))

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire repositories and services
	repos := repository.NewRepository(db)
	cache := ingest.NewCache()
	services := service.NewService(repos, cache, service.AuthConfig{
		SigningKey: viper.GetString("auth.signing_key"),
		TokenTTL:   viper.GetString("auth.token_ttl"),
	})

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// provision configured devices, then freeze the ingestion registry
	registry, err := provisionAndLoadRegistry(ctx, services, repos)
	if err != nil {
		log.Fatalw("failed to provision devices", "err", err)
	}

	// ingestion pipeline: writer worker, hour-bucket sweep, dispatch glue
	writer := ingest.NewWriter(repos.Samples, log.Named("writer"))
	go writer.Run(ctx)

	buffer := ingest.NewBuffer(writer)
	go buffer.Run(ctx, sweepInterval())

	counter := ingest.NewCounter(repos.Switches)
	pipeline := ingest.NewPipeline(registry, cache, buffer, counter, log.Named("ingest"))

	// connect transport
	mq, err := mqttclient.Connect(mqttclient.Options{
		Broker:   viper.GetString("mqtt.broker"),
		Username: viper.GetString("mqtt.username"),
		Password: viper.GetString("mqtt.password"),
	}, pipeline, log.Named("mqtt"))
	if err != nil {
		log.Fatalw("failed to connect mqtt broker", "err", err)
	}
	defer mq.Close()

	// start HTTP server
	apiHandler := handlers.NewHandler(services, log)
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "aquaponics.db")
		dbPath = "aquaponics.db"
	}
	return repository.InitDB(dbPath)
}

// provisionAndLoadRegistry seeds configured devices into the store and
// loads the immutable device registry consulted by ingestion.
func provisionAndLoadRegistry(ctx context.Context, services *service.Service, repos *repository.Repository) (*ingest.Registry, error) {
	var creds []service.DeviceCredential
	if err := viper.UnmarshalKey("devices", &creds); err != nil {
		return nil, err
	}
	if err := services.ProvisionDevices(ctx, creds); err != nil {
		return nil, err
	}
	return ingest.LoadRegistry(ctx, repos.Devices)
}

func sweepInterval() time.Duration {
	if d := viper.GetDuration("sweep_interval"); d > 0 {
		return d
	}
	return defaultSweepInterval
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "3000"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines (writer, sweep)
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
