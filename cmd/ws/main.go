package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Werneck0live/company-directory/internal/broker"
	"github.com/Werneck0live/company-directory/internal/config"
	"github.com/Werneck0live/company-directory/internal/handlers"
	"github.com/Werneck0live/company-directory/internal/utils"
	"github.com/Werneck0live/company-directory/internal/ws"
)

func main() {
	wscfg := config.LoadWSConfig()

	_ = config.InitLogger(wscfg.LogLevel)
	log := slog.Default().With("svc", "ws")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub(log)
	go hub.Run()
	defer hub.Stop()

	// Conecta no Rabbit e começa a consumir
	consumer, err := broker.NewConsumer(wscfg.RabbitURI, wscfg.RabbitQueue, "ws-consumer", wscfg.ConsumerPrefetch, log)
	if err != nil {
		log.Error("rabbit_consumer_start_error", "err", err)
		os.Exit(1)
	}
	defer consumer.Close()

	// HTTP: /ws, /healthz e /metrics
	r := chi.NewRouter()
	r.Use(handlers.LogMiddleware(log))
	r.Get("/ws", ws.ServeWS(hub, log))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "clients": hub.Count()})
	})
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              wscfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: wscfg.ReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	// encaminha mensagens do Rabbit para o hub
	g.Go(func() error {
		return consumer.Run(gctx, hub.Broadcast)
	})
	g.Go(func() error {
		log.Info("ws_listen", "addr", wscfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	// graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), wscfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		log.Error("ws_server_error", "err", err)
	}
	log.Info("stopped")
}
