package github

import (
	"context"
	"net/http"

	"github.com/gnomegl/gitgaze/internal/models"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

type Config struct {
	PerPage int
}

func DefaultConfig() *Config {
	return &Config{
		PerPage: 100,
	}
}

// Client covers the three REST operations the analysis needs: user
// profile, repository listing and commit listing. Every call is a live
// request; there is no caching and no retry.
type Client struct {
	gh  *github.Client
	cfg *Config
}

func NewClient(token string, cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var tc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc = oauth2.NewClient(context.Background(), ts)
	}
	return &Client{gh: github.NewClient(tc), cfg: cfg}
}

// FetchUser returns the public profile of username.
func (c *Client) FetchUser(ctx context.Context, username string) (*models.UserProfile, error) {
	user, resp, err := c.gh.Users.Get(ctx, username)
	if err != nil {
		return nil, classifyError("fetch user", resp, err)
	}
	return convertUser(user), nil
}

// FetchRepos returns every repository of username in the order the
// listing endpoint pages them out. Pages are requested one after another
// until an empty page comes back.
func (c *Client) FetchRepos(ctx context.Context, username string) ([]models.Repository, error) {
	var repos []models.Repository
	opt := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{Page: 1, PerPage: c.cfg.PerPage},
	}
	for {
		page, resp, err := c.gh.Repositories.ListByUser(ctx, username, opt)
		if err != nil {
			return nil, classifyError("list repositories", resp, err)
		}
		if len(page) == 0 {
			break
		}
		for _, r := range page {
			repos = append(repos, convertRepo(r))
		}
		opt.Page++
	}
	return repos, nil
}

// FetchCommits returns the commits of owner/repo in the order the API
// pages them out. A 409 response means the repository is empty, which is a
// normal zero-commit result rather than an error. Commits without an
// author timestamp are dropped.
func (c *Client) FetchCommits(ctx context.Context, owner, repo string) ([]models.Commit, error) {
	var commits []models.Commit
	opt := &github.CommitsListOptions{
		ListOptions: github.ListOptions{Page: 1, PerPage: c.cfg.PerPage},
	}
	for {
		page, resp, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opt)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusConflict {
				return nil, nil
			}
			return nil, classifyError("list commits", resp, err)
		}
		if len(page) == 0 {
			break
		}
		for _, rc := range page {
			if rc.Commit == nil || rc.Commit.Author == nil || rc.Commit.Author.Date == nil {
				continue
			}
			commits = append(commits, models.Commit{
				AuthoredAt: rc.Commit.Author.GetDate().Time.UTC(),
			})
		}
		opt.Page++
	}
	return commits, nil
}

// ValidateToken checks that the configured token is usable.
func (c *Client) ValidateToken(ctx context.Context) error {
	_, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				return &RequestError{Op: "validate token", StatusCode: resp.StatusCode, Body: "invalid GitHub token"}
			case http.StatusForbidden:
				// Rate limited - the token itself is likely fine.
				return nil
			}
		}
		return classifyError("validate token", resp, err)
	}
	return nil
}

func convertUser(u *github.User) *models.UserProfile {
	return &models.UserProfile{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		Bio:         u.GetBio(),
		Location:    u.GetLocation(),
		Company:     u.GetCompany(),
		Blog:        u.GetBlog(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		PublicRepos: u.GetPublicRepos(),
		CreatedAt:   u.GetCreatedAt().Time,
	}
}

func convertRepo(r *github.Repository) models.Repository {
	return models.Repository{
		Name:      r.GetName(),
		Language:  r.GetLanguage(),
		Stars:     r.GetStargazersCount(),
		Forks:     r.GetForksCount(),
		Watchers:  r.GetWatchersCount(),
		SizeKB:    r.GetSize(),
		License:   r.GetLicense().GetName(),
		CreatedAt: r.GetCreatedAt().Time,
		UpdatedAt: r.GetUpdatedAt().Time,
	}
}
