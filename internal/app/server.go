// Package app wires the connection acceptor, the world tick loop, and the
// shared session manager into a runnable server. Grounded on
// internal/server/server.go's accept-loop shape, trimmed to this spec's
// scope (no storage, no RSA/online-mode path, a single fixed generator
// chosen by config instead of config-driven world-radius pre-generation).
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/OCharnyshevich/minecraft-server/internal/conn"
	"github.com/OCharnyshevich/minecraft-server/internal/config"
	"github.com/OCharnyshevich/minecraft-server/internal/registry"
	"github.com/OCharnyshevich/minecraft-server/internal/session"
	"github.com/OCharnyshevich/minecraft-server/internal/world"
	"github.com/OCharnyshevich/minecraft-server/internal/world/gen"
)

// Server owns the listener, the single shared World (C3), and the session
// registry broadcasts are scoped through (C6's Manager).
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	reg     *registry.Data
	world   *world.World
	manager *session.Manager
}

// New builds a Server from configuration and loaded registry data. The
// terrain generator is chosen by cfg.TerrainGenerator: "flat" for a
// superflat world, "noise"/anything else for the default noise terrain.
func New(cfg *config.Config, reg *registry.Data, log *slog.Logger) *Server {
	var terrain world.TerrainGenerator
	switch cfg.TerrainGenerator {
	case "flat":
		terrain = gen.NewFlatGenerator(reg)
	default:
		terrain = gen.NewDefaultGenerator(cfg.Seed, reg)
	}

	return &Server{
		cfg:     cfg,
		log:     log,
		reg:     reg,
		world:   world.NewWorld(terrain),
		manager: session.NewManager(),
	}
}

// Start listens for connections, runs the world tick loop, and accepts
// connections until ctx is cancelled. It returns nil on a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	defer listener.Close()

	go s.world.RunTickLoop(ctx)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.log.Info("server started", "port", s.cfg.Port, "generator", s.cfg.TerrainGenerator, "viewDistance", s.cfg.ViewDistance)

	for {
		c, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.log.Info("server shutting down")
				return nil
			}
			s.log.Error("accept connection", "error", err)
			continue
		}
		connection := conn.New(ctx, c, s.cfg, s.reg, s.world, s.manager, s.log)
		go connection.Handle()
	}
}
