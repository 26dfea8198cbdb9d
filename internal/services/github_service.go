package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alimgiray/gitossum/pkg/config"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubService reads live repository metadata from the GitHub REST API
type GitHubService struct {
	client *github.Client
}

// NewGitHubService builds a client from config. A token raises the API rate limit, and
// APIURL points the client at another host (GitHub Enterprise, tests).
func NewGitHubService(cfg config.GitHubConfig) (*GitHubService, error) {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(httpClient)
	if cfg.APIURL != "" {
		baseURL, err := url.Parse(strings.TrimRight(cfg.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		client.BaseURL = baseURL
	}

	return &GitHubService{client: client}, nil
}

// GetRepository fetches the landing page data of an "owner/name" repository
func (s *GitHubService) GetRepository(ctx context.Context, fullName string) (*github.Repository, error) {
	owner, name, err := parseRepoFullName(fullName)
	if err != nil {
		return nil, err
	}

	repo, _, err := s.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s: %w", fullName, err)
	}
	return repo, nil
}

// parseRepoFullName splits "owner/repo"
func parseRepoFullName(fullName string) (owner, repo string, err error) {
	if len(fullName) == 0 {
		return "", "", fmt.Errorf("empty repository name")
	}

	owner, repo, found := strings.Cut(fullName, "/")
	if !found || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository name format: %s", fullName)
	}
	return owner, repo, nil
}
