package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	httpadapter "blockgrid/internal/adapter/http"
	metricsinmem "blockgrid/internal/adapter/metrics/inmemory"
	gormrepo "blockgrid/internal/adapter/repo/gorm"
	"blockgrid/internal/adapter/repo/memory"
	"blockgrid/internal/app/blockkey"
	"blockgrid/internal/app/blocks"
	"blockgrid/internal/app/ports"
	"blockgrid/internal/app/session"
	"blockgrid/internal/app/worlds"
	"blockgrid/internal/config"
	"blockgrid/internal/domain/world"
	"blockgrid/migrations"

	"github.com/cloudwego/hertz/pkg/app/server"
)

type repos struct {
	worlds ports.WorldRepository
	blocks ports.BlockRepository
	tx     ports.TxManager
	store  string
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", os.Getenv("BLOCKGRID_CONFIG"), "path to yaml config")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := loadConfig(configPath, os.Getenv)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	r := mustBuildRepos(cfg, logger)
	if err := seedDemoWorld(context.Background(), r.worlds, cfg.DemoWorld); err != nil {
		logger.Fatalf("seed demo world: %v", err)
	}

	serverClock := world.NewServerClock(world.ServerClockConfig{
		StartAt:        time.Unix(cfg.ClockStartUnix, 0),
		TicksPerSecond: cfg.TicksPerSecond,
	})
	sessions := session.NewRegistry(session.Config{
		Worlds:         r.worlds,
		ServerClock:    serverClock,
		TicksPerSecond: cfg.TicksPerSecond,
	})
	kpiRecorder := metricsinmem.NewRecorder().WithSessions(func() any { return sessions.Stats() })

	h := httpadapter.Handler{
		WorldsUC: worlds.UseCase{Repo: r.worlds},
		EncoderUC: blockkey.UseCase{
			Worlds:        r.worlds,
			Metrics:       kpiRecorder,
			LookupTimeout: cfg.LookupTimeout.Std(),
		},
		BlocksUC: blocks.UseCase{TxManager: r.tx, Blocks: r.blocks},
		Sessions: sessions,
		KPI:      kpiRecorder,
		Logger:   logger,
	}

	s := server.Default(server.WithHostPorts(cfg.ListenAddr))
	h.RegisterRoutes(s.Engine)
	s.OnShutdown = append(s.OnShutdown, func(context.Context) {
		n := sessions.CloseAll()
		logger.Printf("closed %d open sessions", n)
	})

	logger.Printf("blockgrid server listening on %s (store: %s, demo world: %s size %d)", cfg.ListenAddr, r.store, cfg.DemoWorld.ID, cfg.DemoWorld.Size)
	s.Spin()
}

func loadConfig(path string, getenv func(string) string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg = cfg.ApplyEnv(getenv)
	return cfg, cfg.Validate()
}

// mustBuildRepos uses postgres when a DSN is configured and the in-memory
// store otherwise.
func mustBuildRepos(cfg config.Config, logger *log.Logger) repos {
	dsn := strings.TrimSpace(cfg.DBDSN)
	if dsn == "" {
		store := memory.NewStore()
		return repos{
			worlds: memory.NewWorldRepo(store),
			blocks: memory.NewBlockRepo(store),
			tx:     memory.NewTxManager(store),
			store:  "memory",
		}
	}

	db, err := gormrepo.OpenPostgres(dsn, gormrepo.PoolConfig{
		MaxOpenConns:    cfg.Pool.MaxOpenConns,
		MaxIdleConns:    cfg.Pool.MaxIdleConns,
		ConnMaxLifetime: cfg.Pool.ConnMaxLifetime.Std(),
	})
	if err != nil {
		logger.Fatalf("open postgres: %v", err)
	}
	if cfg.AutoMigrate {
		applied, err := gormrepo.ApplyMigrations(context.Background(), db, migrations.FS)
		if err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
		logger.Printf("applied migrations: %v", applied)
	}
	return repos{
		worlds: gormrepo.NewWorldRepo(db),
		blocks: gormrepo.NewBlockRepo(db),
		tx:     gormrepo.NewTxManager(db),
		store:  "postgres",
	}
}

func seedDemoWorld(ctx context.Context, repo ports.WorldRepository, demo config.DemoWorld) error {
	id := strings.TrimSpace(demo.ID)
	if id == "" {
		return nil
	}
	if err := world.ValidateSize(demo.Size); err != nil {
		return err
	}
	err := repo.Create(ctx, world.World{
		ID:        id,
		Name:      demo.Name,
		Size:      demo.Size,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil && !errors.Is(err, ports.ErrConflict) {
		return err
	}
	return nil
}
