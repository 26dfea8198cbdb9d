package services

import (
	"bytes"
	"io"
	"sort"

	"github.com/alimgiray/gitossum/internal/models"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var (
	pullRequestCategories = []string{"Closed-Merged", "Closed-Unmerged", "Open"}
	pullRequestColors     = []string{"rgba(255,0,0,1)", "rgba(0,94,255,1)", "rgba(8,154,105,1)"}
)

// RepoCharts is the rendered chart markup of one repository
type RepoCharts struct {
	Bar  string
	Pie  string
	Line string
}

// ChartService renders chart markup. Each chart is a self-contained HTML document meant to be
// embedded through an iframe srcdoc.
type ChartService struct {
	width  string
	height string
}

func NewChartService() *ChartService {
	return &ChartService{
		width:  "100%",
		height: "420px",
	}
}

// RenderRepoCharts renders the bar, pie and monthly line charts of a repository
func (s *ChartService) RenderRepoCharts(summary *models.RepoSummary) (*RepoCharts, error) {
	bar, err := s.PullRequestBarChart(summary)
	if err != nil {
		return nil, err
	}
	pie, err := s.PullRequestPieChart(summary)
	if err != nil {
		return nil, err
	}
	line, err := s.PullRequestLineChart(summary.Frequency)
	if err != nil {
		return nil, err
	}
	return &RepoCharts{Bar: bar, Pie: pie, Line: line}, nil
}

// PullRequestBarChart renders the pull request counts by status
func (s *ChartService) PullRequestBarChart(summary *models.RepoSummary) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(s.initOpts("Pull Request Bar Chart")),
		charts.WithTitleOpts(opts.Title{Title: "Pull Request Bar Chart"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Pull Request Type"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Number of Pull Requests"}),
	)

	values := pullRequestCounts(summary)
	items := make([]opts.BarData, 0, len(values))
	for i, v := range values {
		items = append(items, opts.BarData{
			Name:      pullRequestCategories[i],
			Value:     v,
			ItemStyle: &opts.ItemStyle{Color: pullRequestColors[i]},
		})
	}

	bar.SetXAxis(pullRequestCategories).AddSeries("Pulls Bar Chart", items)
	return render(bar)
}

// PullRequestPieChart renders the share of each pull request status
func (s *ChartService) PullRequestPieChart(summary *models.RepoSummary) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(s.initOpts("Pull Request Types Pie Chart")),
		charts.WithTitleOpts(opts.Title{Title: "Pull Request Types Pie Chart"}),
	)

	values := pullRequestCounts(summary)
	items := make([]opts.PieData, 0, len(values))
	for i, v := range values {
		items = append(items, opts.PieData{
			Name:      pullRequestCategories[i],
			Value:     v,
			ItemStyle: &opts.ItemStyle{Color: pullRequestColors[i]},
		})
	}

	pie.AddSeries("Pull Requests", items)
	return render(pie)
}

// PullRequestLineChart renders the Created, Closed and Merged monthly series on a shared axis.
// Each series only spans its own months.
func (s *ChartService) PullRequestLineChart(freq models.PullRequestFrequency) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(s.initOpts("Pull Request Frequency by Month")),
		charts.WithTitleOpts(opts.Title{Title: "Pull Request Frequency by Month"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Number of Pull Requests"}),
	)

	line.SetXAxis(unionLabels(freq.Created, freq.Closed, freq.Merged)).
		AddSeries("Created", lineData(freq.Created)).
		AddSeries("Closed", lineData(freq.Closed)).
		AddSeries("Merged", lineData(freq.Merged))

	return render(line)
}

// ComparisonBarChart groups the pull request counts of several repositories by status
func (s *ChartService) ComparisonBarChart(summaries []*models.RepoSummary) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(s.initOpts("Pull Requests by Repository")),
		charts.WithTitleOpts(opts.Title{Title: "Pull Requests by Repository"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Pull Request Type"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Number of Pull Requests"}),
	)

	bar.SetXAxis(pullRequestCategories)
	for _, summary := range summaries {
		values := pullRequestCounts(summary)
		items := make([]opts.BarData, 0, len(values))
		for _, v := range values {
			items = append(items, opts.BarData{Value: v})
		}
		bar.AddSeries(summary.RepoName, items)
	}

	return render(bar)
}

func (s *ChartService) initOpts(pageTitle string) opts.Initialization {
	return opts.Initialization{
		PageTitle: pageTitle,
		Width:     s.width,
		Height:    s.height,
	}
}

func pullRequestCounts(summary *models.RepoSummary) []int {
	return []int{summary.NumClosedMergedPulls, summary.NumClosedUnmergedPulls, summary.NumOpenPulls}
}

// lineData emits [month, count] pairs so a series keeps its own range on a shared category axis
func lineData(series models.MonthlySeries) []opts.LineData {
	items := make([]opts.LineData, 0, len(series.Labels))
	for i, label := range series.Labels {
		items = append(items, opts.LineData{Value: []interface{}{label, series.Counts[i]}})
	}
	return items
}

// unionLabels merges the month labels of several series in chronological order
func unionLabels(series ...models.MonthlySeries) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, s := range series {
		for _, label := range s.Labels {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	// "YYYY-MM" sorts chronologically
	sort.Strings(labels)
	return labels
}

type renderer interface {
	Render(w io.Writer) error
}

func render(chart renderer) (string, error) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
