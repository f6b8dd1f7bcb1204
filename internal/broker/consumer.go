package broker

import (
	"context"
	"errors"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	deliveries <-chan amqp.Delivery
	log        *slog.Logger
}

func NewConsumer(uri, queue, tag string, prefetch int, log *slog.Logger) (*Consumer, error) {
	if log == nil {
		log = slog.Default()
	}
	conn, ch, err := dialQueue(uri, queue)
	if err != nil {
		return nil, err
	}
	if prefetch > 0 {
		if err := ch.Qos(prefetch, 0, false); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, err
		}
	}
	deliveries, err := ch.Consume(queue, tag, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	log.Info("rabbit_consumer_started", "queue", queue, "prefetch", prefetch)
	return &Consumer{conn: conn, ch: ch, deliveries: deliveries, log: log}, nil
}

// Run entrega cada corpo a handle até o ctx acabar ou o canal fechar.
func (c *Consumer) Run(ctx context.Context, handle func([]byte)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-c.deliveries:
			if !ok {
				c.log.Warn("deliveries_channel_closed")
				return errors.New("rabbit deliveries channel closed")
			}
			handle(d.Body)
		}
	}
}

func (c *Consumer) Close() error {
	var errCh, errConn error
	if c.ch != nil {
		errCh = c.ch.Close()
	}
	if c.conn != nil {
		errConn = c.conn.Close()
	}
	return errors.Join(errCh, errConn)
}
