package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	got    models.SessionRequest
	result models.SessionResult
	err    error
}

func (f *fakeExecutor) ExecuteSession(ctx context.Context, session models.SessionRequest, progress models.ProgressFunc) (models.SessionResult, error) {
	f.got = session
	return f.result, f.err
}

func newTestConsumer(exec SessionExecutor) *Consumer {
	logger := zerolog.Nop()
	return NewConsumer(nil, NewRedisStreamConfig("", "", "sampling-requests", "sampling-results", "g", "c"), exec, &logger)
}

func TestDecodeRequest(t *testing.T) {
	n := 3
	values, err := EncodeRequest(models.SessionRequest{EventID: "evt-1", Prompt: "Name a dog", NumCalls: &n})
	require.NoError(t, err)

	request, err := DecodeRequest(redis.XMessage{ID: "1-0", Values: values})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", request.EventID)
	assert.Equal(t, "Name a dog", request.Prompt)
	assert.Equal(t, 3, *request.NumCalls)
}

func TestDecodeRequest_EventIDFallsBackToEntryID(t *testing.T) {
	request, err := DecodeRequest(redis.XMessage{ID: "17-2", Values: map[string]any{"payload": `{"prompt":"hi"}`}})
	require.NoError(t, err)
	assert.Equal(t, "17-2", request.EventID)
}

func TestDecodeRequest_Errors(t *testing.T) {
	_, err := DecodeRequest(redis.XMessage{ID: "1-0", Values: map[string]any{}})
	assert.ErrorIs(t, err, ErrMissingPayload)

	_, err = DecodeRequest(redis.XMessage{ID: "1-0", Values: map[string]any{"payload": "{oops"}})
	assert.Error(t, err)
}

func TestConsumer_HandlePublishesResult(t *testing.T) {
	exec := &fakeExecutor{result: models.SessionResult{ID: "s-1", EventID: "evt-9", UniqueCount: 1, Consistency: 100}}
	consumer := newTestConsumer(exec)

	values, err := consumer.handle(context.Background(), redis.XMessage{
		ID:     "5-0",
		Values: map[string]any{"payload": `{"event_id":"evt-9","prompt":"Name a dog"}`},
	})
	require.NoError(t, err)

	assert.Equal(t, "evt-9", values["event_id"])
	assert.NotContains(t, values, "error")

	var result models.SessionResult
	require.NoError(t, json.Unmarshal([]byte(values["payload"].(string)), &result))
	assert.Equal(t, "s-1", result.ID)
	assert.Equal(t, 100.0, result.Consistency)
	assert.Equal(t, "Name a dog", exec.got.Prompt)
}

func TestConsumer_HandlePublishesSessionError(t *testing.T) {
	exec := &fakeExecutor{err: models.NewInputError("prompt", "must not be empty")}
	consumer := newTestConsumer(exec)

	values, err := consumer.handle(context.Background(), redis.XMessage{
		ID:     "6-0",
		Values: map[string]any{"payload": `{"event_id":"evt-10","prompt":""}`},
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-10", values["event_id"])
	assert.Equal(t, "prompt: must not be empty", values["error"])
	assert.NotContains(t, values, "payload")
}

func TestConsumer_HandleRejectsUndecodable(t *testing.T) {
	consumer := newTestConsumer(&fakeExecutor{err: errors.New("must not run")})

	_, err := consumer.handle(context.Background(), redis.XMessage{ID: "7-0", Values: map[string]any{"other": "x"}})
	assert.ErrorIs(t, err, ErrMissingPayload)
}
