package cli

import (
	"github.com/gnomegl/gitgaze/internal/utils"
	"github.com/urfave/cli/v2"
)

const helpTemplate = `{{.Name}} - {{.Usage}}

Usage: {{.HelpName}} [options] <username>

Options:
   {{range .VisibleFlags}}{{.}}
   {{end}}`

func NewApp(action cli.ActionFunc) *cli.App {
	cli.AppHelpTemplate = helpTemplate

	return &cli.App{
		Name:    "gitgaze",
		Usage:   "Analyze a GitHub user's profile, repositories and commit habits",
		Version: "v" + utils.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "GitHub personal access token",
				EnvVars: []string{"GITGAZE_GITHUB_TOKEN", "GITHUB_TOKEN"},
			},
			&cli.IntFlag{
				Name:    "repos",
				Aliases: []string{"r"},
				Usage:   "number of repositories (in listing order) to scan for commit patterns",
				Value:   5,
			},
			&cli.StringFlag{
				Name:    "charts",
				Aliases: []string{"c"},
				Usage:   "directory to write chart PNGs into",
			},
			&cli.BoolFlag{
				Name:    "no-charts",
				Aliases: []string{"n"},
				Usage:   "skip chart generation",
			},
		},
		Action:    action,
		ArgsUsage: "<username>",
		Authors: []*cli.Author{
			{Name: "gnomegl"},
		},
	}
}
