package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/snakegame/leaderboard/internal/app"
	"github.com/snakegame/leaderboard/internal/config"
	"github.com/snakegame/leaderboard/internal/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	logging.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if errRun := app.Run(ctx, cfg); errRun != nil {
		log.WithError(errRun).Fatal("server failed")
	}
}
