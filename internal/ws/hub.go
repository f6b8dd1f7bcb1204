package ws

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Werneck0live/company-directory/internal/metrics"
)

type Client struct {
	ID   string
	Send chan []byte
}

type unicastMsg struct {
	id  string
	msg []byte
}

// Hub repassa eventos de empresa para os clientes conectados. O mapa de
// clientes só é alterado dentro de Run.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // id -> client
	register chan *Client
	unreg    chan *Client

	sendAll chan []byte     // envio para todos
	unicast chan unicastMsg // envio para 1 cliente

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		sendAll:  make(chan []byte, 1024),
		unicast:  make(chan unicastMsg, 1024),
		log:      log.With("cmp", "ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	id := h.nextID.Add(1)
	return fmt.Sprintf("c%d", id)
}

func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			total := len(h.clients)
			h.mu.Unlock()
			metrics.SetWSClients(total)
			h.log.Info("client_registered", "id", c.ID, "total", total)

		case c := <-h.unreg:
			if c == nil || c.ID == "" {
				continue
			}
			h.drop(c.ID)
			h.log.Info("client_unregistered", "id", c.ID, "total", h.Count())

		case msg := <-h.sendAll:
			metrics.ObserveBroadcast()
			var slow []string
			h.mu.RLock()
			for id, c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					slow = append(slow, id)
				}
			}
			h.mu.RUnlock()
			// cliente lento -> dropa para não travar o hub
			for _, id := range slow {
				h.drop(id)
				h.log.Warn("broadcast_drop_slow", "id", id)
			}

		case u := <-h.unicast:
			h.mu.RLock()
			c := h.clients[u.id]
			h.mu.RUnlock()
			if c == nil {
				h.log.Warn("send_one_miss", "id", u.id)
				continue
			}
			select {
			case c.Send <- u.msg:
			default:
				h.drop(u.id)
				h.log.Warn("send_one_drop_slow", "id", u.id)
			}

		case <-h.stop:
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			metrics.SetWSClients(0)
			h.log.Info("hub_run_stop")
			return
		}
	}
}

// drop remove e fecha o canal do cliente (idempotente).
func (h *Hub) drop(id string) {
	h.mu.Lock()
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.Send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	metrics.SetWSClients(total)
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

// Register atribui o id (se vazio) antes de entregar ao loop.
func (h *Hub) Register(c *Client) {
	if c.ID == "" {
		c.ID = h.newID()
	}
	select {
	case h.register <- c:
	case <-h.stopped:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unreg <- c:
	case <-h.stopped:
	}
}

func (h *Hub) Broadcast(b []byte)               { h.sendAll <- b }
func (h *Hub) SendToClient(id string, b []byte) { h.unicast <- unicastMsg{id: id, msg: b} }
