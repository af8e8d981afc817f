package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/termcard/internal/config"
	"github.com/hpungsan/termcard/internal/errors"
	"github.com/hpungsan/termcard/internal/github"
	"github.com/hpungsan/termcard/internal/joke"
	"github.com/hpungsan/termcard/internal/ops"
	"github.com/hpungsan/termcard/internal/paste"
	"github.com/hpungsan/termcard/internal/script"
	"github.com/hpungsan/termcard/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "termcard",
		Usage:   "Your GitHub profile as a terminal card",
		Version: Version,
		Commands: []*cli.Command{
			renderCmd(cfg),
			themesCmd(),
			serveCmd(cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// newGenerator wires the real providers into a Generator.
func newGenerator(cfg *config.Config) *ops.Generator {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.RequestTimeoutSecs) * time.Second,
	}

	return ops.NewGenerator(
		cfg,
		github.NewClient(cfg.GitHubAPIBase, cfg.GitHubToken, httpClient),
		joke.NewClient(cfg.JokeURL, time.Duration(cfg.JokeTimeoutSecs)*time.Second, httpClient),
		paste.NewClient(cfg.PasteURL, httpClient),
	)
}

// renderCmd creates the render command.
func renderCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a card for a GitHub username",
		ArgsUsage: "<username>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "theme", Aliases: []string{"t"}, Value: "clean", Usage: "Card theme: clean|linux|cowsay|figlet"},
			&cli.BoolFlag{Name: "upload", Aliases: []string{"u"}, Usage: "Upload the script to the paste host for a hosted one-liner"},
			&cli.BoolFlag{Name: "json", Usage: "Print the full result as JSON"},
			&cli.BoolFlag{Name: "script", Usage: "Print the script body instead of the command"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("username argument is required"))
			}

			out, err := newGenerator(cfg).Generate(c.Context, ops.GenerateInput{
				Username: c.Args().First(),
				Theme:    c.String("theme"),
				Upload:   c.Bool("upload"),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(out)
			}
			if c.Bool("script") {
				fmt.Fprint(c.App.Writer, out.Script)
				return nil
			}

			fmt.Fprintln(c.App.Writer, out.Command)
			return nil
		},
	}
}

// themesCmd creates the themes command.
func themesCmd() *cli.Command {
	return &cli.Command{
		Name:  "themes",
		Usage: "List available card themes",
		Action: func(c *cli.Context) error {
			for _, t := range script.Themes() {
				fmt.Fprintln(c.App.Writer, t)
			}
			return nil
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the termcard web UI and JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind to"},
			&cli.IntFlag{Name: "port", Value: 8799, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(newGenerator(cfg), Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// outputJSON prints a value as indented JSON on stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError prints a structured error as JSON on stderr and returns the
// error so the process exits non-zero.
func outputError(err error) error {
	cErr, ok := err.(*errors.CardError)
	if !ok {
		cErr = errors.NewInternal(err)
	}
	payload := map[string]any{
		"error": map[string]any{
			"code":    string(cErr.Code),
			"message": cErr.Message,
			"status":  cErr.Status,
		},
	}
	b, _ := json.Marshal(payload)
	fmt.Fprintln(os.Stderr, string(b))
	return err
}
