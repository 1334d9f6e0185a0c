package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/minecraft-server/internal/app"
	"github.com/OCharnyshevich/minecraft-server/internal/config"
	"github.com/OCharnyshevich/minecraft-server/internal/registry"
)

func main() {
	cfg := config.DefaultConfig()

	var viewDistance int
	flag.IntVar(&cfg.Port, "port", cfg.Port, "server port")
	flag.IntVar(&viewDistance, "view-distance", int(cfg.ViewDistance), "chunk view distance")
	flag.StringVar(&cfg.TerrainGenerator, "generator", cfg.TerrainGenerator, "world generator (noise, flat)")
	flag.StringVar(&cfg.RegistryData, "registry-data", cfg.RegistryData, "registry data source (dir, archive, or URL); empty uses built-in defaults")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world generation seed")
	flag.Parse()
	cfg.ViewDistance = int32(viewDistance)

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	reg, err := registry.Load(cfg.RegistryData)
	if err != nil {
		log.Error("load registry data", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := app.New(cfg, reg, log)
	if err := srv.Start(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
