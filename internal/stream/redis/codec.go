package redis

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	fieldPayload = "payload"
	fieldEventID = "event_id"
	fieldError   = "error"
)

var ErrMissingPayload = errors.New("missing payload field")

// DecodeRequest reads the JSON SessionRequest from a stream message. A message
// without an event_id inside the payload inherits the stream entry id.
func DecodeRequest(msg redis.XMessage) (models.SessionRequest, error) {
	payload, ok := msg.Values[fieldPayload].(string)
	if !ok {
		return models.SessionRequest{}, ErrMissingPayload
	}

	var request models.SessionRequest
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		return models.SessionRequest{}, fmt.Errorf("failed to decode payload: %w", err)
	}

	if request.EventID == "" {
		request.EventID = msg.ID
	}
	return request, nil
}

// EncodeRequest builds the stream fields for a SessionRequest.
func EncodeRequest(request models.SessionRequest) (map[string]any, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	return map[string]any{fieldPayload: string(payload)}, nil
}

// EncodeResult builds the result stream fields: the JSON result on success, the error text otherwise.
func EncodeResult(eventID string, result models.SessionResult, runErr error) (map[string]any, error) {
	values := map[string]any{fieldEventID: eventID}
	if runErr != nil {
		values[fieldError] = runErr.Error()
		return values, nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	values[fieldPayload] = string(payload)
	return values, nil
}
