package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alimgiray/gitossum/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMessage(t *testing.T) {
	msg, err := encodeMessage("django/django", map[string]string{"repo_name": "django/django"})
	require.NoError(t, err)

	assert.Equal(t, []byte("django/django"), msg.Key)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "django/django", decoded["repo_name"])
	assert.False(t, msg.Time.IsZero())

	_, err = encodeMessage("bad", make(chan int))
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	publisher := New(config.KafkaConfig{Topic: "mining-requests"})
	_, isLog := publisher.(*LogPublisher)
	assert.True(t, isLog)
	assert.NoError(t, publisher.Publish(context.Background(), "k", "v"))
	assert.NoError(t, publisher.Close())

	producer := New(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "mining-requests"})
	_, isKafka := producer.(*Producer)
	assert.True(t, isKafka)
	assert.NoError(t, producer.Close())
}
