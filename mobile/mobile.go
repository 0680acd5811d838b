package mobile

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"checkers/internal/server/game"
	httpserver "checkers/internal/server/http"
)

const (
	idleGameTTL = 2 * time.Hour
	sweepEvery  = 10 * time.Minute
)

var (
	mu      sync.Mutex
	running *httpserver.Server
	stopJan context.CancelFunc
)

// StartServer starts the local HTTP server for an embedding app.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
// It returns the bound address, or "" when the server could not start.
func StartServer(webDir string, port string) string {
	mu.Lock()
	defer mu.Unlock()
	stopLocked()

	games := game.NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	go games.RunJanitor(ctx, idleGameTTL, sweepEvery)

	srv := httpserver.NewServer(httpserver.NewMux(httpserver.NewHandler(games), webDir, ""))
	addr, err := srv.Listen(net.JoinHostPort("127.0.0.1", port))
	if err != nil {
		cancel()
		log.Error().Err(err).Str("port", port).Msg("mobile server")
		return ""
	}
	running, stopJan = srv, cancel
	return addr.String()
}

// StopServer shuts down the server started by StartServer, if any.
func StopServer() {
	mu.Lock()
	defer mu.Unlock()
	stopLocked()
}

func stopLocked() {
	if running == nil {
		return
	}
	stopJan()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := running.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("mobile server shutdown")
	}
	running, stopJan = nil, nil
}
