package trip

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventSource    = "ecoroute"
	EventTripSaved = "trip.saved"
)

// Event is the envelope written to the trip topic.
type Event struct {
	ID     string    `json:"id"`
	Source string    `json:"source"`
	Type   string    `json:"type"`
	Time   time.Time `json:"time"`
	UID    string    `json:"uid"`
	Data   Trip      `json:"data"`
}

type Publisher interface {
	TripSaved(ctx context.Context, uid string, t Trip) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher keys messages by user so one user's events stay ordered.
type KafkaPublisher struct {
	w messageWriter
}

func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{w: w}
}

func (p *KafkaPublisher) TripSaved(ctx context.Context, uid string, t Trip) error {
	evt := Event{
		ID:     uuid.NewString(),
		Source: EventSource,
		Type:   EventTripSaved,
		Time:   time.Now().UTC(),
		UID:    uid,
		Data:   t,
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(uid),
		Value: body,
		Headers: []kafka.Header{
			{Key: "ce-type", Value: []byte(evt.Type)},
			{Key: "ce-id", Value: []byte(evt.ID)},
		},
	})
}

// NopPublisher drops events; used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) TripSaved(context.Context, string, Trip) error { return nil }
