package handler

import (
	"cinemaverse/logger"
	"cinemaverse/model"
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// SeatChannel is the Redis channel carrying ids of showtimes whose seat map
// changed, so every instance can push to its own subscribers.
const SeatChannel = "cinemaverse:showtime:seats"

const writeTimeout = 5 * time.Second

type SeatMapSource interface {
	SeatMap(ctx context.Context, id uint) (*model.SeatMap, error)
}

type SeatMessage struct {
	Type string         `json:"type"`
	Data *model.SeatMap `json:"data"`
}

type seatClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *seatClient) send(msg SeatMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(msg)
}

// SeatHub pushes seat maps to websocket subscribers of a showtime. With
// Redis, changes are fanned out through SeatChannel.
type SeatHub struct {
	mu      sync.Mutex
	rooms   map[uint]map[*seatClient]struct{}
	source  SeatMapSource
	redis   *redis.Client
	publish func(showtimeID uint)
}

func NewSeatHub(source SeatMapSource, rdb *redis.Client) *SeatHub {
	h := &SeatHub{rooms: map[uint]map[*seatClient]struct{}{}, source: source, redis: rdb}
	h.publish = func(id uint) { go h.Broadcast(id) }
	if rdb != nil {
		h.publish = func(id uint) {
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			defer cancel()
			if err := rdb.Publish(ctx, SeatChannel, strconv.FormatUint(uint64(id), 10)).Err(); err != nil {
				logger.Log.WithError(err).WithField("showtime", id).Warn("seat change publish failed")
				go h.Broadcast(id)
			}
		}
	}
	return h
}

// SeatsChanged implements service.SeatNotifier.
func (h *SeatHub) SeatsChanged(showtimeID uint) {
	h.publish(showtimeID)
}

// Run relays changes published by any instance until ctx ends. It returns
// immediately without Redis.
func (h *SeatHub) Run(ctx context.Context) {
	if h.redis == nil {
		return
	}
	sub := h.redis.Subscribe(ctx, SeatChannel)
	defer sub.Close()
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			id, err := strconv.ParseUint(msg.Payload, 10, 32)
			if err != nil {
				continue
			}
			h.Broadcast(uint(id))
		}
	}
}

// Broadcast loads the current seat map once and sends it to every
// subscriber of the showtime. Clients that cannot be written are dropped.
func (h *SeatHub) Broadcast(showtimeID uint) {
	clients := h.clients(showtimeID)
	if len(clients) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	m, err := h.source.SeatMap(ctx, showtimeID)
	if err != nil {
		logger.Log.WithError(err).WithField("showtime", showtimeID).Warn("seat map load failed")
		return
	}
	msg := SeatMessage{Type: "seats", Data: m}
	for _, c := range clients {
		if err := c.send(msg); err != nil {
			h.leave(showtimeID, c)
			_ = c.conn.Close()
		}
	}
}

func (h *SeatHub) clients(showtimeID uint) []*seatClient {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*seatClient, 0, len(h.rooms[showtimeID]))
	for c := range h.rooms[showtimeID] {
		out = append(out, c)
	}
	return out
}

func (h *SeatHub) join(showtimeID uint, c *seatClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[showtimeID] == nil {
		h.rooms[showtimeID] = map[*seatClient]struct{}{}
	}
	h.rooms[showtimeID][c] = struct{}{}
}

func (h *SeatHub) leave(showtimeID uint, c *seatClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[showtimeID], c)
	if len(h.rooms[showtimeID]) == 0 {
		delete(h.rooms, showtimeID)
	}
}

// Subscribers counts the open connections of a showtime.
func (h *SeatHub) Subscribers(showtimeID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[showtimeID])
}

// Upgrade rejects plain HTTP requests on the websocket route.
func (h *SeatHub) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// Handler serves GET /ws/showtimes/:id/seats. The current seat map is sent
// on connect and again after every change.
func (h *SeatHub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		id64, err := strconv.ParseUint(conn.Params("id"), 10, 32)
		if err != nil || id64 == 0 {
			_ = conn.Close()
			return
		}
		showtimeID := uint(id64)
		client := &seatClient{conn: conn}

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		m, err := h.source.SeatMap(ctx, showtimeID)
		cancel()
		if err != nil {
			_ = client.send(SeatMessage{Type: "error"})
			_ = conn.Close()
			return
		}
		if err := client.send(SeatMessage{Type: "seats", Data: m}); err != nil {
			_ = conn.Close()
			return
		}

		h.join(showtimeID, client)
		defer func() {
			h.leave(showtimeID, client)
			_ = conn.Close()
		}()
		// the client only listens; reading detects the close
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
