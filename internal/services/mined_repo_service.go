package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alimgiray/gitossum/internal/models"
	"github.com/alimgiray/gitossum/internal/repositories"
	"github.com/alimgiray/gitossum/pkg/logger"
	"github.com/google/go-github/v57/github"
)

// MaxComparedRepos is the widest comparison page
const MaxComparedRepos = 3

// RepoMetadataSource returns the live metadata of an "owner/name" repository
type RepoMetadataSource interface {
	GetRepository(ctx context.Context, fullName string) (*github.Repository, error)
}

// MinedRepoService assembles the listing, detail and comparison pages
type MinedRepoService struct {
	minedRepoRepo *repositories.MinedRepoRepository
	metadata      RepoMetadataSource
}

func NewMinedRepoService(minedRepoRepo *repositories.MinedRepoRepository, metadata RepoMetadataSource) *MinedRepoService {
	return &MinedRepoService{
		minedRepoRepo: minedRepoRepo,
		metadata:      metadata,
	}
}

// NormalizeRepoName joins owner and name into the lowercase key mined rows are stored under
func NormalizeRepoName(owner, name string) string {
	return strings.ToLower(strings.TrimSpace(owner)) + "/" + strings.ToLower(strings.TrimSpace(name))
}

// ListMinedRepos returns every mined repository with its owner's avatar. Avatar enrichment
// is best effort: on any metadata failure the names are returned without avatars.
func (s *MinedRepoService) ListMinedRepos(ctx context.Context) ([]*models.RepoListing, error) {
	names, err := s.minedRepoRepo.GetAllNames()
	if err != nil {
		return nil, err
	}

	listings := make([]*models.RepoListing, 0, len(names))
	for _, name := range names {
		listings = append(listings, &models.RepoListing{RepoName: name})
	}

	for _, listing := range listings {
		repo, err := s.metadata.GetRepository(ctx, listing.RepoName)
		if err == nil && repo.GetOwner().GetAvatarURL() == "" {
			err = fmt.Errorf("%w: owner.avatar_url", ErrMissingMetadata)
		}
		if err != nil {
			logger.WithError(err).WithField("repo", listing.RepoName).Warn("Rendering repository list without avatars")
			for _, l := range listings {
				l.AvatarURL = ""
			}
			return listings, nil
		}
		listing.AvatarURL = repo.GetOwner().GetAvatarURL()
	}

	return listings, nil
}

// GetSummaries builds one summary per requested repository, in request order. Every name must
// be mined, otherwise ErrRepoNotFound is returned before any metadata is fetched. Metadata
// failures are returned as is.
func (s *MinedRepoService) GetSummaries(ctx context.Context, repoNames ...string) ([]*models.RepoSummary, error) {
	if len(repoNames) == 0 || len(repoNames) > MaxComparedRepos {
		return nil, ErrInvalidRepoCount
	}

	mined := make([]*models.MinedRepo, 0, len(repoNames))
	for _, name := range repoNames {
		repo, err := s.minedRepoRepo.GetByName(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrRepoNotFound, name)
			}
			return nil, err
		}
		mined = append(mined, repo)
	}

	summaries := make([]*models.RepoSummary, 0, len(mined))
	for _, repo := range mined {
		meta, err := s.metadata.GetRepository(ctx, repo.RepoName)
		if err != nil {
			return nil, err
		}

		summary, err := buildRepoSummary(repo, meta)
		if err != nil {
			return nil, fmt.Errorf("repository %s: %w", repo.RepoName, err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// buildRepoSummary merges the stored counts with the live metadata
func buildRepoSummary(repo *models.MinedRepo, meta *github.Repository) (*models.RepoSummary, error) {
	required := []struct {
		field   string
		present bool
	}{
		{"created_at", meta.CreatedAt != nil},
		{"updated_at", meta.UpdatedAt != nil},
		{"stargazers_count", meta.StargazersCount != nil},
		{"open_issues", meta.OpenIssues != nil},
		{"network_count", meta.NetworkCount != nil},
		{"subscribers_count", meta.SubscribersCount != nil},
		{"owner", meta.Owner != nil},
	}
	for _, r := range required {
		if !r.present {
			return nil, fmt.Errorf("%w: %s", ErrMissingMetadata, r.field)
		}
	}

	homepage, hasHomepage := normalizeHomepage(meta.Homepage)

	summary := &models.RepoSummary{
		RepoName:  repo.RepoName,
		AvatarURL: meta.GetOwner().GetAvatarURL(),

		NumPulls:               repo.NumPulls,
		NumClosedMergedPulls:   repo.NumClosedMergedPulls,
		NumClosedUnmergedPulls: repo.NumClosedUnmergedPulls,
		NumOpenPulls:           repo.NumOpenPulls,

		Description:     meta.GetDescription(),
		CreatedAt:       meta.GetCreatedAt().UTC(),
		UpdatedAt:       meta.GetUpdatedAt().UTC(),
		CloneURL:        meta.GetCloneURL(),
		Homepage:        homepage,
		HasHomepage:     hasHomepage,
		Stars:           meta.GetStargazersCount(),
		Language:        meta.GetLanguage(),
		HasWiki:         meta.GetHasWiki(),
		OpenIssues:      meta.GetOpenIssues(),
		NetworkCount:    meta.GetNetworkCount(),
		SubscriberCount: meta.GetSubscribersCount(),

		Frequency: BuildPullRequestFrequency(repo),
	}

	if meta.License != nil {
		summary.License = &models.License{
			Key:  meta.License.GetKey(),
			Name: meta.License.GetName(),
		}
	}

	return summary, nil
}

// normalizeHomepage collapses the empty and null spellings of a homepage to false
func normalizeHomepage(homepage *string) (string, bool) {
	if homepage == nil {
		return "", false
	}
	switch *homepage {
	case "", "None", "null":
		return "", false
	}
	return *homepage, true
}
