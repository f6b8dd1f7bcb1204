package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/sync/errgroup"

	"github.com/Werneck0live/company-directory/internal/admin"
	"github.com/Werneck0live/company-directory/internal/broker"
	"github.com/Werneck0live/company-directory/internal/config"
	"github.com/Werneck0live/company-directory/internal/handlers"
	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/snapshot"
	"github.com/Werneck0live/company-directory/internal/store"
	"github.com/Werneck0live/company-directory/internal/store/memory"
	"github.com/Werneck0live/company-directory/internal/store/mongostore"
	"github.com/Werneck0live/company-directory/internal/store/sqlite"
)

// cmd/api/main.go
func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load() // .env

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	_ = config.InitLogger(cfg.LogLevel)
	slog.Info("starting", "port", cfg.Port, "driver", cfg.StoreDriver)

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("store_open_error", "driver", cfg.StoreDriver, "err", err)
		return 1
	}
	defer closeStore()

	if *task != "" {
		return runTask(ctx, *task, cfg, s)
	}

	// publisher (Rabbit); sem broker a API sobe sem eventos
	var pub handlers.Publisher
	if cfg.EventsEnabled {
		p, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
		if err != nil {
			slog.Warn("rabbitmq_connect_error", "err", err)
		} else {
			defer p.Close()
			pub = p
		}
	}

	h := handlers.NewCompanyHandler(s, pub, slog.Default())
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(h),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	// graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server_error", "err", err)
		return 1
	}
	slog.Info("stopped")
	return 0
}

func runTask(ctx context.Context, task string, cfg *config.Config, s store.Store) int {
	switch task {
	case "seed":
		companies, err := seedData(cfg.SnapshotPath)
		if err != nil {
			slog.Error("seed_load_error", "err", err)
			return 1
		}
		if _, err := admin.SeedCompanies(ctx, s, companies, slog.Default()); err != nil {
			slog.Error("seed_failed", "err", err)
			return 1
		}
		slog.Info("seed_done")
		return 0 // encerra o processo sem subir HTTP
	default:
		slog.Error("unknown_admin_task", "task", task)
		return 2
	}
}

func seedData(path string) ([]models.Company, error) {
	if path == "" {
		return snapshot.Bundled()
	}
	return snapshot.LoadFile(path)
}

// openStore escolhe o backend pelo STORE_DRIVER e devolve a função de fechamento.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := mongostore.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() { _ = client.Disconnect(context.Background()) }
		cs := mongostore.NewCompanyStore(client.Database(cfg.MongoDB))
		if err := cs.EnsureIndexes(ctx); err != nil {
			disconnect()
			return nil, nil, err
		}
		slog.Info("mongo_connected", "db", cfg.MongoDB)
		return cs, disconnect, nil

	case config.DriverSQLite:
		ss, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("sqlite_opened", "path", cfg.SQLitePath)
		return ss, func() { _ = ss.Close() }, nil

	case config.DriverMemory:
		companies, err := seedData(cfg.SnapshotPath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("memory_store_loaded", "count", len(companies))
		return memory.New(companies), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
