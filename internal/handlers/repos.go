package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alimgiray/gitossum/internal/models"
	"github.com/alimgiray/gitossum/internal/services"
	"github.com/gin-gonic/gin"
)

const repoNotFoundBody = "<h1>404 Repo Not Found</h1>"

type RepoHandler struct {
	minedRepoService *services.MinedRepoService
	chartService     *services.ChartService
	exportService    *services.ExportService
}

func NewRepoHandler(minedRepoService *services.MinedRepoService, chartService *services.ChartService, exportService *services.ExportService) *RepoHandler {
	return &RepoHandler{
		minedRepoService: minedRepoService,
		chartService:     chartService,
		exportService:    exportService,
	}
}

// List shows every mined repository
func (h *RepoHandler) List(c *gin.Context) {
	repos, err := h.minedRepoService.ListMinedRepos(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, "repos", gin.H{
		"Title": "Mined Repositories",
		"Repos": repos,
	})
}

// Detail shows the statistics and charts of one repository
func (h *RepoHandler) Detail(c *gin.Context) {
	summaries, ok := h.summaries(c, services.NormalizeRepoName(c.Param("owner"), c.Param("name")))
	if !ok {
		return
	}
	summary := summaries[0]

	charts, err := h.chartService.RenderRepoCharts(summary)
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, "repo_detail", gin.H{
		"Title":   summary.RepoName,
		"Summary": summary,
		"Charts":  charts,
	})
}

// CompareTwo compares two repositories side by side
func (h *RepoHandler) CompareTwo(c *gin.Context) {
	h.compare(c,
		services.NormalizeRepoName(c.Param("owner1"), c.Param("name1")),
		services.NormalizeRepoName(c.Param("owner2"), c.Param("name2")),
	)
}

// CompareThree compares three repositories side by side
func (h *RepoHandler) CompareThree(c *gin.Context) {
	h.compare(c,
		services.NormalizeRepoName(c.Param("owner1"), c.Param("name1")),
		services.NormalizeRepoName(c.Param("owner2"), c.Param("name2")),
		services.NormalizeRepoName(c.Param("owner3"), c.Param("name3")),
	)
}

func (h *RepoHandler) compare(c *gin.Context, repoNames ...string) {
	summaries, ok := h.summaries(c, repoNames...)
	if !ok {
		return
	}

	comparison, err := h.chartService.ComparisonBarChart(summaries)
	if err != nil {
		renderError(c, err)
		return
	}

	charts := make([]*services.RepoCharts, 0, len(summaries))
	for _, summary := range summaries {
		line, err := h.chartService.PullRequestLineChart(summary.Frequency)
		if err != nil {
			renderError(c, err)
			return
		}
		charts = append(charts, &services.RepoCharts{Line: line})
	}

	render(c, http.StatusOK, "compare", gin.H{
		"Title":           "Compare " + strings.Join(repoNames, " vs "),
		"Summaries":       summaries,
		"ComparisonChart": comparison,
		"Charts":          charts,
		"ExportURL":       exportURL(repoNames),
	})
}

// Export downloads the summaries of the "repo" query values as a spreadsheet
func (h *RepoHandler) Export(c *gin.Context) {
	requested := c.QueryArray("repo")
	repoNames := make([]string, 0, len(requested))
	for _, name := range requested {
		owner, repo, _ := strings.Cut(name, "/")
		repoNames = append(repoNames, services.NormalizeRepoName(owner, repo))
	}

	summaries, ok := h.summaries(c, repoNames...)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteWorkbook(&buf, summaries); err != nil {
		renderError(c, err)
		return
	}

	filename := strings.ReplaceAll(strings.Join(repoNames, "_"), "/", "-") + ".xlsx"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, services.XLSXContentType, buf.Bytes())
}

// summaries loads the requested summaries and writes the failure response itself when it
// cannot
func (h *RepoHandler) summaries(c *gin.Context, repoNames ...string) ([]*models.RepoSummary, bool) {
	summaries, err := h.minedRepoService.GetSummaries(c.Request.Context(), repoNames...)
	switch {
	case err == nil:
		return summaries, true
	case errors.Is(err, services.ErrRepoNotFound):
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(repoNotFoundBody))
	case errors.Is(err, services.ErrInvalidRepoCount):
		c.String(http.StatusBadRequest, err.Error())
	default:
		renderError(c, err)
	}
	return nil, false
}

func exportURL(repoNames []string) string {
	query := url.Values{}
	for _, name := range repoNames {
		query.Add("repo", name)
	}
	return "/export?" + query.Encode()
}
