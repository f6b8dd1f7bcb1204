package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Werneck0live/company-directory/internal/models"
)

// Subscribe conecta no relay e entrega cada CompanyEvent em fn até o ctx
// acabar. Reconecta com backoff simples quando a conexão cai.
func Subscribe(ctx context.Context, url string, log *slog.Logger, fn func(models.CompanyEvent)) {
	if log == nil {
		log = slog.Default()
	}
	backoff := time.Second
	for ctx.Err() == nil {
		err := listen(ctx, url, log, fn)
		if ctx.Err() != nil {
			return
		}
		log.Warn("ws_subscribe_retry", "url", url, "err", err, "backoff", backoff.String())
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 30*time.Second)
	}
}

func listen(ctx context.Context, url string, log *slog.Logger, fn func(models.CompanyEvent)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Info("ws_subscribed", "url", url)

	// fecha a conexão quando o ctx acaba para destravar o ReadMessage
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var ev models.CompanyEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			log.Warn("ws_event_decode_error", "err", err)
			continue
		}
		fn(ev)
	}
}
