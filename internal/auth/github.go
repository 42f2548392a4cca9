package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/gnomegl/gitgaze/internal/github"
	"github.com/urfave/cli/v2"
)

// GetToken resolves the GitHub token: the --token flag wins, then the
// environment, then a previously saved token under the user config dir.
// A token passed by flag is persisted for later runs.
func GetToken(c *cli.Context) string {
	if token := c.String("token"); token != "" {
		saveToken(token)
		return token
	}

	for _, env := range []string{"GITGAZE_GITHUB_TOKEN", "GITHUB_TOKEN"} {
		if token := os.Getenv(env); token != "" {
			return token
		}
	}

	configDir, err := os.UserConfigDir()
	if err == nil {
		tokenFile := filepath.Join(configDir, "gitgaze", "token")
		if data, err := os.ReadFile(tokenFile); err == nil {
			if token := strings.TrimSpace(string(data)); token != "" {
				return token
			}
		}
	}

	return ""
}

func saveToken(token string) {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		return
	}
	configPath := filepath.Join(configDir, "gitgaze")
	os.MkdirAll(configPath, 0700)
	if err := os.WriteFile(filepath.Join(configPath, "token"), []byte(token), 0600); err == nil {
		color.Green("Token saved successfully")
	}
}

// SetupClient resolves credentials and returns a ready API client.
func SetupClient(ctx context.Context, c *cli.Context) (*github.Client, error) {
	token := GetToken(c)
	client := github.NewClient(token, nil)

	if token == "" {
		color.Yellow("Running without a token. You may hit rate limits.")
		return client, nil
	}

	if err := client.ValidateToken(ctx); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	return client, nil
}
