package models

import "time"

// MonthlySeries is one point per calendar month, labelled "YYYY-MM"
type MonthlySeries struct {
	Labels []string
	Counts []int
}

// IsEmpty reports whether the series has no points
func (s MonthlySeries) IsEmpty() bool {
	return len(s.Labels) == 0
}

// PullRequestFrequency holds the monthly series of the three pull request event types
type PullRequestFrequency struct {
	Created MonthlySeries
	Closed  MonthlySeries
	Merged  MonthlySeries
}

// License is the repository license as reported by the metadata API
type License struct {
	Key  string
	Name string
}

// RepoSummary is everything the detail and comparison pages show for one repository
type RepoSummary struct {
	RepoName  string
	AvatarURL string

	NumPulls               int
	NumClosedMergedPulls   int
	NumClosedUnmergedPulls int
	NumOpenPulls           int

	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CloneURL    string
	// Homepage is only meaningful when HasHomepage is true
	Homepage    string
	HasHomepage bool
	Stars       int
	Language    string
	HasWiki     bool
	// License is nil when the metadata API omits it
	License         *License
	OpenIssues      int
	NetworkCount    int
	SubscriberCount int

	Frequency PullRequestFrequency
}

// RepoListing is one entry of the mined repositories page
type RepoListing struct {
	RepoName  string
	AvatarURL string
}
