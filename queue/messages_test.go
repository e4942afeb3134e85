package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactCreatedMessageRoundTrip(t *testing.T) {
	msg := NewContactCreatedMessage(42)
	assert.Equal(t, uint(42), msg.ID)
	assert.WithinDuration(t, time.Now(), msg.Timestamp, time.Second)

	body, err := msg.ToJSON()
	require.NoError(t, err)

	parsed, err := ContactCreatedMessageFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, msg.ID, parsed.ID)
	assert.WithinDuration(t, msg.Timestamp, parsed.Timestamp, time.Second)
}

func TestContactCreatedMessageFromJSON_Malformed(t *testing.T) {
	_, err := ContactCreatedMessageFromJSON([]byte("not json"))
	assert.Error(t, err)
}
