package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"checkers/internal/config"
	"checkers/internal/logging"
	"checkers/internal/server/game"
	httpserver "checkers/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	// headless machines have no browser; nothing to report
	_ = cmd.Start()
}

func checkDurations(ttl, every time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("--game-ttl must be positive, got %v", ttl)
	}
	if every <= 0 {
		return fmt.Errorf("--sweep-every must be positive, got %v", every)
	}
	return nil
}

// browseURL turns a bound address into something a browser can open.
func browseURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil || host == "" || host == "::" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := &cli.App{
		Name:  "checkers-local",
		Usage: "Host checkers games over HTTP and serve the web board",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Aliases: []string{"a"}, Usage: "listen address", Value: cfg.Server.Addr},
			&cli.StringFlag{Name: "web", Usage: "directory with the desktop web board; empty serves the API only", Value: cfg.Server.WebDir},
			&cli.StringFlag{Name: "mobile-web", Usage: "directory with the mobile web board (defaults to --web)"},
			&cli.BoolFlag{Name: "open", Usage: "open the board in the default browser", Value: cfg.Server.OpenBrowser},
			&cli.DurationFlag{Name: "game-ttl", Usage: "drop games idle for longer than this", Value: cfg.GameTTL()},
			&cli.DurationFlag{Name: "sweep-every", Usage: "how often idle games are swept", Value: cfg.SweepEvery()},
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error", Value: cfg.Log.Level},
			&cli.BoolFlag{Name: "log-pretty", Usage: "human readable logs", Value: cfg.Log.Pretty},
		},
		Action: serve,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("checkers-local")
	}
}

func serve(cCtx *cli.Context) error {
	if err := logging.Configure(cCtx.String("log-level"), cCtx.Bool("log-pretty")); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ttl, every := cCtx.Duration("game-ttl"), cCtx.Duration("sweep-every")
	if err := checkDurations(ttl, every); err != nil {
		return err
	}

	games := game.NewManager()
	go games.RunJanitor(ctx, ttl, every)

	mux := httpserver.NewMux(httpserver.NewHandler(games), cCtx.String("web"), cCtx.String("mobile-web"))
	srv := httpserver.NewServer(mux)
	addr, err := srv.Listen(cCtx.String("addr"))
	if err != nil {
		return err
	}
	log.Info().Str("web", cCtx.String("web")).Str("url", browseURL(addr)).Msg("serving")

	if cCtx.Bool("open") {
		if cCtx.String("web") == "" {
			log.Warn().Msg("--open needs --web; serving the API only")
		} else {
			openBrowser(browseURL(addr))
		}
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Close(shutdownCtx)
}
