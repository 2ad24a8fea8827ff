package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/five82/boardwalk/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:   "boardwalk",
		Usage:  "Browse, filter, move and delete Grafana dashboards from the terminal",
		Action: runApp,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "~/.config/boardwalk/config.toml",
				Sources:     cli.EnvVars("BOARDWALK_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "prefs",
				Usage: "Path to the UI preferences file",
			},
			&cli.StringFlag{
				Name:  "folder-uid",
				Usage: "Only manage dashboards inside this folder",
			},
			&cli.IntFlag{
				Name:  "folder-id",
				Usage: "Numeric id of the folder to manage (skips the uid lookup)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write debug logs to the log file",
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "boardwalk: %v\n", err)
		return 1
	}
	return 0
}

func runApp(ctx context.Context, cmd *cli.Command) error {
	return app.Run(ctx, app.Options{
		ConfigPath: cmd.String("config"),
		PrefsPath:  cmd.String("prefs"),
		FolderUID:  cmd.String("folder-uid"),
		FolderID:   int64(cmd.Int("folder-id")),
		Debug:      cmd.Bool("debug"),
	})
}
