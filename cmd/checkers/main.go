// checkers plays bitboard checkers in the terminal, locally or against a server.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"checkers/internal/checkers"
	"checkers/internal/client"
	"checkers/internal/config"
	"checkers/internal/logging"
	"checkers/internal/session"
	"checkers/internal/textui"
	"checkers/internal/ui"
)

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := newApp(cfg)
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("checkers")
	}
}

func newApp(cfg *config.Config) *cli.App {
	fenFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "fen",
			Usage: "start from this position instead of the opening, e.g. \"8/8/8/8/1b6/2r5/8/8 b\"",
		}
	}
	return &cli.App{
		Name:  "checkers",
		Usage: "Play checkers in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error", Value: cfg.Log.Level},
		},
		Before: func(cCtx *cli.Context) error {
			return logging.Configure(cCtx.String("log-level"), true)
		},
		Action: func(cCtx *cli.Context) error {
			return playText(cCtx, cfg)
		},
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "Play in the text shell (default)",
				Flags:  []cli.Flag{fenFlag()},
				Action: func(cCtx *cli.Context) error { return playText(cCtx, cfg) },
			},
			{
				Name:  "tui",
				Usage: "Play in the full-screen board",
				Flags: []cli.Flag{fenFlag()},
				Action: func(cCtx *cli.Context) error {
					sess, err := localSession(cCtx.String("fen"))
					if err != nil {
						return err
					}
					return ui.Run(cfg, sess)
				},
			},
			{
				Name:  "remote",
				Usage: "Play a game hosted by checkers-local",
				Flags: []cli.Flag{
					fenFlag(),
					&cli.StringFlag{Name: "server", Aliases: []string{"s"}, Usage: "server base URL", Value: cfg.Client.BaseURL},
					&cli.BoolFlag{Name: "tui", Usage: "use the full-screen board"},
				},
				Action: func(cCtx *cli.Context) error {
					c := client.New(cCtx.String("server"), cfg.ClientTimeout())
					sess, err := client.NewRemoteSession(cCtx.Context, c, cCtx.String("fen"))
					if err != nil {
						return err
					}
					log.Debug().Str("game_id", sess.ID()).Msg("remote game")
					if cCtx.Bool("tui") {
						return ui.Run(cfg, sess)
					}
					return runShell(cCtx, sess)
				},
			},
			{
				Name:  "config",
				Usage: "Show the effective configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "save", Usage: "write it to the user config file"},
				},
				Action: func(cCtx *cli.Context) error {
					if cCtx.Bool("save") {
						if err := cfg.Save(); err != nil {
							return err
						}
						path, _ := xdg.ConfigFile("checkers/config.json")
						fmt.Fprintln(cCtx.App.Writer, "saved", path)
						return nil
					}
					enc := json.NewEncoder(cCtx.App.Writer)
					enc.SetIndent("", "  ")
					return enc.Encode(cfg)
				},
			},
		},
	}
}

func localSession(fen string) (*session.Local, error) {
	var start *checkers.Position
	if fen != "" {
		pos, err := checkers.DecodePosition(fen)
		if err != nil {
			return nil, fmt.Errorf("--fen: %w", err)
		}
		start = pos
	}
	return session.NewLocal(start)
}

func playText(cCtx *cli.Context, cfg *config.Config) error {
	sess, err := localSession(cCtx.String("fen"))
	if err != nil {
		return err
	}
	return runShell(cCtx, sess)
}

func runShell(cCtx *cli.Context, sess session.Session) error {
	err := textui.New(sess, cCtx.App.Reader, cCtx.App.Writer).Run(cCtx.Context)
	if errors.Is(err, textui.ErrInputClosed) {
		return nil
	}
	return err
}
