package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alimgiray/gitossum/pkg/database"
	"github.com/alimgiray/gitossum/pkg/mailer"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type recordingSender struct {
	mu       sync.Mutex
	messages []*mailer.Message
	err      error
}

func (s *recordingSender) Send(msg *mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return s.err
}

type published struct {
	key   string
	value interface{}
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []published
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, published{key: key, value: value})
	return p.err
}

func (p *recordingPublisher) Close() error {
	return nil
}

var errUnavailable = errors.New("unavailable")
