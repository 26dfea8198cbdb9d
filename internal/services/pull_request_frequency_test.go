package services

import (
	"math/rand"
	"testing"

	"github.com/alimgiray/gitossum/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBucketByMonth(t *testing.T) {
	testCases := []struct {
		name           string
		timestamps     []string
		expectedLabels []string
		expectedCounts []int
	}{
		{
			name:           "Gap filled with zero",
			timestamps:     []string{"2021-01-05 00:00:00", "2021-01-20 00:00:00", "2021-03-01 00:00:00"},
			expectedLabels: []string{"2021-01", "2021-02", "2021-03"},
			expectedCounts: []int{2, 0, 1},
		},
		{
			name:           "Single event",
			timestamps:     []string{"2019-07-14 12:30:00"},
			expectedLabels: []string{"2019-07"},
			expectedCounts: []int{1},
		},
		{
			name:           "Range crosses a year boundary",
			timestamps:     []string{"2020-11-30 23:59:59", "2021-02-01 00:00:00", "2020-12-01 00:00:00"},
			expectedLabels: []string{"2020-11", "2020-12", "2021-01", "2021-02"},
			expectedCounts: []int{1, 1, 0, 1},
		},
		{
			name:       "Empty list",
			timestamps: []string{},
		},
		{
			name:       "Nil list",
			timestamps: nil,
		},
		{
			name:       "Unparseable list",
			timestamps: []string{"yesterday", "2021-13-45"},
		},
		{
			name:       "One bad value empties the series",
			timestamps: []string{"2021-01-05 00:00:00", "2021-01-05T00:00:00Z"},
		},
		{
			name:       "Fractional seconds empty the series",
			timestamps: []string{"2021-01-05 00:00:00.123", "2021-02-01 00:00:00"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			series := BucketByMonth(tc.timestamps)
			assert.Equal(t, tc.expectedLabels, series.Labels)
			assert.Equal(t, tc.expectedCounts, series.Counts)
			assert.Equal(t, len(series.Labels) == 0, series.IsEmpty())
		})
	}
}

func TestBucketByMonthProperties(t *testing.T) {
	timestamps := []string{
		"2018-03-02 10:00:00", "2018-03-28 10:00:00", "2018-06-11 08:15:00",
		"2018-09-30 23:00:00", "2019-01-01 00:00:00", "2018-06-01 00:00:00",
		"2018-12-31 23:59:59", "2018-03-15 14:00:00",
	}

	series := BucketByMonth(timestamps)

	t.Run("Counts sum to input length", func(t *testing.T) {
		total := 0
		for _, c := range series.Counts {
			total += c
		}
		assert.Equal(t, len(timestamps), total)
	})

	t.Run("Labels are contiguous", func(t *testing.T) {
		assert.Len(t, series.Labels, 11)
		assert.Equal(t, "2018-03", series.Labels[0])
		assert.Equal(t, "2019-01", series.Labels[len(series.Labels)-1])
		assert.Equal(t, len(series.Labels), len(series.Counts))
	})

	t.Run("Order independent", func(t *testing.T) {
		r := rand.New(rand.NewSource(42))
		for i := 0; i < 10; i++ {
			shuffled := append([]string(nil), timestamps...)
			r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			assert.Equal(t, series, BucketByMonth(shuffled))
		}
	})
}

func TestBuildPullRequestFrequency(t *testing.T) {
	repo := &models.MinedRepo{
		CreatedAtList: models.TimestampList{"2021-01-05 00:00:00", "2021-02-05 00:00:00"},
		ClosedAtList:  models.TimestampList{"not a date"},
		MergedAtList:  models.TimestampList{"2021-02-06 00:00:00"},
	}

	freq := BuildPullRequestFrequency(repo)

	assert.Equal(t, []string{"2021-01", "2021-02"}, freq.Created.Labels)
	assert.True(t, freq.Closed.IsEmpty())
	assert.Equal(t, []int{1}, freq.Merged.Counts)
}
