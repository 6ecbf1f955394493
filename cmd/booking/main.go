package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/travelswift/booking-system/config"
	"github.com/travelswift/booking-system/internal/app"
	"github.com/travelswift/booking-system/pkg/logger"

	_ "github.com/travelswift/booking-system/docs"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
)

func main() {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := context.Background()
	log := logger.InitLogger("booking", logger.LevelDebug)

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		os.Exit(1)
	}

	log = logger.InitLogger("booking", strings.ToUpper(cfg.Server.LogLevel))

	// Creating application
	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	// Running the application
	if err = application.Run(ctx); err != nil {
		log.Error(ctx, "failed to run application", err)
		os.Exit(1)
	}
}
