package marketdata

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	BinanceStreamURL = "wss://stream.binance.com:9443/ws/dogeusdt@trade"

	reconnectDelay = 5 * time.Second
)

// BinanceStream subscribes to the Binance trade stream and pushes each
// trade price to registered callbacks. It reconnects on read errors until
// Close is called.
type BinanceStream struct {
	url       string
	logger    *zap.Logger
	conn      *websocket.Conn
	callbacks []func(price float64, at time.Time)
	done      chan struct{}
	mu        sync.Mutex
}

func NewBinanceStream(url string, logger *zap.Logger) *BinanceStream {
	if url == "" {
		url = BinanceStreamURL
	}
	return &BinanceStream{
		url:    url,
		logger: logger,
		done:   make(chan struct{}),
	}
}

func (b *BinanceStream) OnPriceUpdate(callback func(price float64, at time.Time)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbacks = append(b.callbacks, callback)
}

// Start connects and launches the read loop. It returns after the first
// connection attempt; later reconnects happen in the background.
func (b *BinanceStream) Start() error {
	conn, _, err := websocket.DefaultDialer.Dial(b.url, nil)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.conn = conn
	b.mu.Unlock()

	go b.readLoop(conn)
	return nil
}

func (b *BinanceStream) Close() error {
	close(b.done)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

func (b *BinanceStream) readLoop(conn *websocket.Conn) {
	defer conn.Close()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-b.done:
				return
			default:
			}
			b.logger.Warn("Live stream read failed, reconnecting", zap.Error(err))
			b.reconnect()
			return
		}

		var event struct {
			Price     string `json:"p"`
			TradeTime int64  `json:"T"`
		}
		if err := json.Unmarshal(message, &event); err != nil {
			b.logger.Warn("Live stream message unmarshal failed", zap.Error(err))
			continue
		}
		if event.Price == "" {
			continue
		}

		price, err := strconv.ParseFloat(event.Price, 64)
		if err != nil {
			continue
		}
		at := time.UnixMilli(event.TradeTime).UTC()

		b.mu.Lock()
		callbacks := make([]func(float64, time.Time), len(b.callbacks))
		copy(callbacks, b.callbacks)
		b.mu.Unlock()

		for _, cb := range callbacks {
			cb(price, at)
		}
	}
}

func (b *BinanceStream) reconnect() {
	for {
		select {
		case <-b.done:
			return
		case <-time.After(reconnectDelay):
		}

		conn, _, err := websocket.DefaultDialer.Dial(b.url, nil)
		if err != nil {
			b.logger.Warn("Live stream reconnect failed", zap.Error(err))
			continue
		}

		b.mu.Lock()
		b.conn = conn
		b.mu.Unlock()

		go b.readLoop(conn)
		return
	}
}
