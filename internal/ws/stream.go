package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
)

// StreamWebSocket upgrades the request and runs streamer until it finishes
// or the client hangs up; the streamer's context is cancelled on disconnect.
func StreamWebSocket(c fiber.Ctx, streamer func(ctx context.Context, w *EventWriter) error) error {
	type requestCtxProvider interface {
		RequestCtx() *fasthttp.RequestCtx
	}

	provider, ok := any(c).(requestCtxProvider)
	if !ok {
		return fiber.ErrInternalServerError
	}

	return Upgrader.Upgrade(provider.RequestCtx(), func(conn *websocket.Conn) {
		defer conn.Close()

		closed := make(chan struct{})
		var once sync.Once
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					once.Do(func() { close(closed) })
					return
				}
			}
		}()

		streamCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			<-closed
			cancel()
		}()

		writer := &EventWriter{conn: conn}

		err := streamer(streamCtx, writer)
		if err != nil && !errors.Is(err, context.Canceled) {
			_ = writer.WriteStatus("error", "event stream failed")
			return
		}

		_ = writer.WriteStatus("info", "event stream ended")
	})
}
