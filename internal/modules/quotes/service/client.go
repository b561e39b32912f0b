package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"signal_copier/internal/models"
	"signal_copier/internal/modules/config"
	healthsvc "signal_copier/internal/modules/health/service"
	"signal_copier/internal/signal"
	"signal_copier/pkg/logger"

	"github.com/gorilla/websocket"
)

// Client держит живой стрим цен и последний bid/ask по каждому символу.
// Если стрим лежит или символа ещё не было, Get вернёт промах,
// и резолв цены уйдёт в REST.
type Client struct {
	cfg      *config.Config
	wsDialer *websocket.Dialer
	state    *healthsvc.State

	mu    sync.RWMutex
	cache map[string]models.Quote
}

func NewClient(cfg *config.Config, state *healthsvc.State) *Client {
	return &Client{
		cfg:      cfg,
		wsDialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		state:    state,
		cache:    make(map[string]models.Quote),
	}
}

// Get отдаёт последнюю котировку из кэша.
func (c *Client) Get(symbol string) (models.Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.cache[symbol]
	return q, ok
}

func (c *Client) store(symbol string, q models.Quote) {
	c.mu.Lock()
	c.cache[symbol] = q
	c.mu.Unlock()
	c.state.TouchQuote(time.Now())
}

// Run — цикл подключения: dial → subscribe → ping/read до разрыва, и заново.
// Блокирующий; зовём из горутины, гасим через ctx.
func (c *Client) Run(ctx context.Context) {
	url := c.cfg.Quotes.URL

	// подписываемся сразу на весь известный словарь символов
	args := make([]map[string]string, 0, len(signal.Symbols))
	for _, s := range signal.Symbols {
		if s == "GOLD" { // алиас, у брокера такого тикера нет
			continue
		}
		args = append(args, map[string]string{
			"channel": "price",
			"symbol":  s,
		})
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		logger.Info("[QUOTES] connect %s, %d symbols", url, len(args))
		conn, _, err := c.wsDialer.Dial(url, nil)
		if err != nil {
			logger.Warn("[QUOTES] dial error: %v", err)
			time.Sleep(time.Second)
			continue
		}

		sub := map[string]any{
			"op":   "subscribe",
			"args": args,
		}
		if err := conn.WriteJSON(sub); err != nil {
			logger.Warn("[QUOTES] subscribe error: %v", err)
			_ = conn.Close()
			continue
		}

		c.state.SetFeedConnected(true)

		// keepalive ping каждые 20s, иначе брокер рвёт соединение
		stopPing := make(chan struct{})
		go func() {
			t := time.NewTicker(20 * time.Second)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-stopPing:
					return
				case <-t.C:
					_ = conn.WriteJSON(map[string]string{"op": "ping"})
				}
			}
		}()

		c.readLoop(ctx, conn)
		close(stopPing)
		c.state.SetFeedConnected(false)

		select {
		case <-ctx.Done():
			return
		default:
			time.Sleep(time.Second)
		}
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.Warn("[QUOTES] read error: %v", err)
			return
		}

		var frame struct {
			Arg struct {
				Channel string `json:"channel"`
				Symbol  string `json:"symbol"`
			} `json:"arg"`
			Data []struct {
				Bid json.Number `json:"bid"`
				Ask json.Number `json:"ask"`
			} `json:"data"`
		}
		if err := json.Unmarshal(msg, &frame); err != nil {
			continue
		}
		if frame.Arg.Channel != "price" || len(frame.Data) == 0 {
			continue
		}

		// последний кадр в пачке — самый свежий
		row := frame.Data[len(frame.Data)-1]
		bid, err1 := strconv.ParseFloat(row.Bid.String(), 64)
		ask, err2 := strconv.ParseFloat(row.Ask.String(), 64)
		if err1 != nil || err2 != nil || bid <= 0 || ask <= 0 {
			continue
		}

		c.store(frame.Arg.Symbol, models.Quote{Bid: bid, Ask: ask})
	}
}
