package rabbitmq

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPublishing(t *testing.T) {
	occurred := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	event := domain.ReservationEvent{
		Type:          domain.ReservationCancelledEvent,
		ReservationID: uuid.New(),
		AreaID:        uuid.New(),
		AreaName:      "Quincho",
		ResidentID:    uuid.New(),
		ActorID:       uuid.New(),
		Date:          "2025-03-12",
		Start:         domain.NewClockTime(10, 0),
		End:           domain.NewClockTime(12, 0),
		Status:        domain.ReservationCancelled,
		Reason:        "lluvia",
		OccurredAt:    occurred,
	}

	msg, err := buildPublishing(event)

	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "reservation.cancelled", msg.Type)
	assert.Equal(t, "reservation.cancelled:"+event.ReservationID.String(), msg.MessageId)
	assert.Equal(t, occurred, msg.Timestamp)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "10:00", body["start"])
	assert.Equal(t, "12:00", body["end"])
	assert.Equal(t, "lluvia", body["reason"])
	assert.Equal(t, "Quincho", body["area_name"])
}

func TestBuildPublishing_DefaultsTimestamp(t *testing.T) {
	msg, err := buildPublishing(domain.ReservationEvent{Type: domain.ReservationCreatedEvent})

	require.NoError(t, err)
	assert.False(t, msg.Timestamp.IsZero())
}
