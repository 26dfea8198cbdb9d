package services

import (
	"time"

	"github.com/alimgiray/gitossum/internal/models"
)

const monthLabelLayout = "2006-01"

// BucketByMonth counts timestamps per calendar month over the contiguous range from the
// earliest to the latest month, filling months without events with zero.
// An empty list, or one with any value that is not exactly "YYYY-MM-DD HH:MM:SS", yields an
// empty series.
func BucketByMonth(timestamps []string) models.MonthlySeries {
	if len(timestamps) == 0 {
		return models.MonthlySeries{}
	}

	counts := make(map[time.Time]int, len(timestamps))
	var first, last time.Time

	for i, raw := range timestamps {
		// time.Parse accepts trailing fractional seconds; the stored format has none
		if len(raw) != len(models.TimestampLayout) {
			return models.MonthlySeries{}
		}
		ts, err := time.Parse(models.TimestampLayout, raw)
		if err != nil {
			return models.MonthlySeries{}
		}

		month := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
		counts[month]++

		if i == 0 || month.Before(first) {
			first = month
		}
		if i == 0 || month.After(last) {
			last = month
		}
	}

	series := models.MonthlySeries{}
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		series.Labels = append(series.Labels, month.Format(monthLabelLayout))
		series.Counts = append(series.Counts, counts[month])
	}

	return series
}

// BuildPullRequestFrequency buckets the created, closed and merged lists of a mined repository
// independently
func BuildPullRequestFrequency(repo *models.MinedRepo) models.PullRequestFrequency {
	return models.PullRequestFrequency{
		Created: BucketByMonth(repo.CreatedAtList),
		Closed:  BucketByMonth(repo.ClosedAtList),
		Merged:  BucketByMonth(repo.MergedAtList),
	}
}
