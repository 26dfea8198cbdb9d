package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alimgiray/gitossum/internal/middleware"
	"github.com/alimgiray/gitossum/internal/models"
	"github.com/alimgiray/gitossum/internal/repositories"
	"github.com/alimgiray/gitossum/internal/services"
	"github.com/alimgiray/gitossum/pkg/config"
	"github.com/alimgiray/gitossum/pkg/database"
	"github.com/alimgiray/gitossum/pkg/mailer"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []*mailer.Message
}

func (s *recordingSender) Send(msg *mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) Close() error {
	return nil
}

// fakeGitHub serves GET /repos/{owner}/{repo} for the repositories it knows
type fakeGitHub struct {
	*httptest.Server
	mu      sync.Mutex
	failing map[string]bool
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	gh := &fakeGitHub{failing: map[string]bool{}}
	gh.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fullName := strings.TrimPrefix(r.URL.Path, "/repos/")
		owner, _, _ := strings.Cut(fullName, "/")

		gh.mu.Lock()
		failing := gh.failing[fullName]
		gh.mu.Unlock()
		if failing {
			http.Error(w, `{"message":"Server Error"}`, http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"full_name":         fullName,
			"description":       "Description of " + fullName,
			"created_at":        "2012-04-28T02:47:18Z",
			"updated_at":        "2023-01-01T00:00:00Z",
			"clone_url":         "https://github.com/" + fullName + ".git",
			"homepage":          "None",
			"stargazers_count":  1234,
			"language":          "Go",
			"has_wiki":          true,
			"license":           map[string]string{"key": "mit", "name": "MIT License"},
			"open_issues":       42,
			"network_count":     99,
			"subscribers_count": 7,
			"owner":             map[string]string{"login": owner, "avatar_url": "https://avatars.example.com/" + owner},
		})
	}))
	t.Cleanup(gh.Close)
	return gh
}

func (gh *fakeGitHub) fail(fullName string) {
	gh.mu.Lock()
	defer gh.mu.Unlock()
	gh.failing[fullName] = true
}

type testApp struct {
	router    *gin.Engine
	db        *sqlx.DB
	github    *fakeGitHub
	mail      *recordingSender
	publisher *recordingPublisher
	minedRepo *repositories.MinedRepoRepository
	users     *repositories.UserRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gh := newFakeGitHub(t)
	githubService, err := services.NewGitHubService(config.GitHubConfig{APIURL: gh.URL})
	require.NoError(t, err)

	app := &testApp{
		db:        db,
		github:    gh,
		mail:      &recordingSender{},
		publisher: &recordingPublisher{},
		minedRepo: repositories.NewMinedRepoRepository(db),
		users:     repositories.NewUserRepository(db, trmsqlx.DefaultCtxGetter),
	}

	tokens := services.NewActivationTokenService("test-secret", time.Hour)
	app.router, err = NewRouter(Dependencies{
		DB:                   db,
		Sessions:             middleware.NewSessions("test-secret"),
		UserService:          services.NewUserService(app.users, manager.Must(trmsqlx.NewDefaultFactory(db)), tokens, app.mail, "http://localhost:8080"),
		MinedRepoService:     services.NewMinedRepoService(app.minedRepo, githubService),
		MiningRequestService: services.NewMiningRequestService(repositories.NewMiningRequestRepository(db), app.publisher),
		FeedbackService:      services.NewFeedbackService(repositories.NewFeedbackRepository(db), app.mail, "team@example.com"),
		ChartService:         services.NewChartService(),
		ExportService:        services.NewExportService(),
	})
	require.NoError(t, err)

	return app
}

func (a *testApp) seedRepo(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, a.minedRepo.Create(&models.MinedRepo{
		ID:                     uuid.New().String(),
		RepoName:               name,
		NumPulls:               16,
		NumClosedMergedPulls:   10,
		NumClosedUnmergedPulls: 4,
		NumOpenPulls:           2,
		CreatedAtList:          models.TimestampList{"2021-01-05 00:00:00", "2021-03-01 00:00:00"},
		ClosedAtList:           models.TimestampList{"2021-02-01 00:00:00"},
		MergedAtList:           models.TimestampList{"2021-02-01 00:00:00"},
		MinedAt:                time.Now().UTC(),
	}))
}

// seedActiveUser stores an active account and returns its session cookie
func (a *testApp) seedActiveUser(t *testing.T, username string) *http.Cookie {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.NewUser(username, username+"@example.com", string(hash))
	require.NoError(t, a.users.Create(context.Background(), user))
	require.NoError(t, a.users.Activate(context.Background(), user.ID))

	w := a.post(t, "/login", url.Values{"username": {username}, "password": {"s3cret-pass"}})
	require.Equal(t, http.StatusFound, w.Code)
	return sessionCookie(t, w)
}

func (a *testApp) get(t *testing.T, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) post(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, a.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session" && cookie.MaxAge >= 0 {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}
