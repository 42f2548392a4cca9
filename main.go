package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/gnomegl/gitgaze/internal/analyzer"
	"github.com/gnomegl/gitgaze/internal/art"
	"github.com/gnomegl/gitgaze/internal/auth"
	appcli "github.com/gnomegl/gitgaze/internal/cli"
	"github.com/gnomegl/gitgaze/internal/report"
	"github.com/gnomegl/gitgaze/internal/visual"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func runApp(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.ShowAppHelp(c)
	}

	username := c.Args().First()
	ctx := context.Background()

	client, err := auth.SetupClient(ctx, c)
	if err != nil {
		return err
	}

	cfg := analyzer.DefaultConfig()
	if n := c.Int("repos"); n > 0 {
		cfg.CommitRepoLimit = n
	}

	color.Blue("Analyzing GitHub profile: %s", username)
	result, err := analyzer.New(client, cfg).Analyze(ctx, username)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(report.Render(result))

	if c.Bool("no-charts") {
		return nil
	}

	charts, err := visual.Render(result)
	if err != nil {
		return err
	}

	dir := c.String("charts")
	if dir == "" {
		color.White("\nGenerated %d charts (use --charts DIR to write them out)", len(charts))
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for name, payload := range charts {
		png, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		path := filepath.Join(dir, name+".png")
		if err := os.WriteFile(path, png, 0644); err != nil {
			return err
		}
		color.Green("Wrote %s", path)
	}
	return nil
}

func main() {
	// Configure logger to only show the message
	log.SetFlags(0)
	_ = godotenv.Load()

	app := appcli.NewApp(runApp)
	app.Before = func(c *cli.Context) error {
		if c.Args().Len() == 0 && !c.Bool("help") && !c.Bool("version") {
			art.PrintLogo()
			cli.ShowAppHelp(c)
			return cli.Exit("", 1)
		}
		if !c.Bool("help") && !c.Bool("version") {
			art.PrintLogo()
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
