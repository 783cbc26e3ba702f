package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "datahub_sim/docs" // swagger spec, served at /swagger
	"datahub_sim/internal/handlers"
	"datahub_sim/internal/logger"
	"datahub_sim/internal/repository"
	"datahub_sim/internal/server"
	"datahub_sim/internal/service"
	"datahub_sim/internal/simulation"

	"github.com/spf13/viper"
)

// @title           DataHub Energy Simulator API
// @version         1.0
// @description     Energy-aware job scheduling simulator: baseline and smart schedulers over a 24h horizon with solar, thermal, and price inputs.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, loadSimConfig())
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
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
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return repository.InitDB(dbPath)
}

// loadSimConfig layers config file overrides over the built-in run
// defaults. Uploaded series are applied later, per run.
func loadSimConfig() simulation.Config {
	cfg := simulation.DefaultConfig()
	if v := viper.GetFloat64("sim.power_cap_kw"); v > 0 {
		cfg.PowerCapKW = v
	}
	if v := viper.GetInt("sim.step_minutes"); v > 0 {
		cfg.StepMinutes = v
	}
	if v := viper.GetFloat64("sim.tariff"); v > 0 {
		cfg.Tariff = v
		cfg.Price = simulation.NewModelSource(simulation.StaticTariff(v))
	}
	if v := viper.GetFloat64("sim.carbon_intensity"); v > 0 {
		cfg.CarbonIntensity = v
	}
	if v := viper.GetFloat64("sim.background_load_kw"); v > 0 {
		cfg.BackgroundLoadKW = v
	}
	if v := viper.GetFloat64("sim.throttle_threshold_c"); v > 0 {
		cfg.ThrottleThresholdC = v
	}
	if v := viper.GetFloat64("sim.penalty_kwh"); v > 0 {
		cfg.PenaltyKWh = v
	}
	return cfg
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
