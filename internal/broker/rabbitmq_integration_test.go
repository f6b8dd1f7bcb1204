//go:build integration
// +build integration

package broker

/*
	Para rodar: go test -tags=integration -v ./internal/broker -run TestRabbitMQ -count=1

	obs: Rodar todos os de integração: go test -tags=integration -v ./... -count=1
*/

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Werneck0live/company-directory/internal/models"
)

func startRabbit(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "rabbitmq:3.13",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start rabbit: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5672/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

// Sobe RabbitMQ real, publica um CompanyEvent e consome pelo Consumer
func TestRabbitMQ_PublishEventAndConsume(t *testing.T) {
	t.Parallel()
	uri := startRabbit(t)
	queue := "company_events_test"

	pub, err := NewPublisher(uri, queue)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	t.Cleanup(func() { _ = pub.Close() })

	cons, err := NewConsumer(uri, queue, "test-consumer", 10, slog.Default())
	if err != nil {
		t.Fatalf("new consumer: %v", err)
	}
	t.Cleanup(func() { _ = cons.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	got := make(chan []byte, 1)
	go func() {
		_ = cons.Run(ctx, func(b []byte) {
			select {
			case got <- b:
			default:
			}
		})
	}()

	ev := models.NewCompanyEvent(models.ActionCreated, &models.Company{ID: "c-1", Name: "Acme"})
	if err := pub.PublishEvent(ctx, ev); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case b := <-got:
		var back models.CompanyEvent
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("body is not a CompanyEvent: %v (%s)", err, b)
		}
		if back.Action != models.ActionCreated || back.CompanyID != "c-1" || back.Name != "Acme" {
			t.Fatalf("event mismatch: %#v", back)
		}
	case <-ctx.Done():
		t.Fatal("timeout esperando mensagem")
	}
}
