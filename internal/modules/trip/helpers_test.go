package trip

import (
	"context"
	"errors"
	"sync"

	"github.com/segmentio/kafka-go"

	"ecoroute/internal/types"
)

type memStore struct {
	mu    sync.Mutex
	trips map[string][]Trip
	err   error
}

func newMemStore() *memStore {
	return &memStore{trips: map[string][]Trip{}}
}

func (m *memStore) Append(_ context.Context, uid string, t Trip, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	list := append([]Trip{t}, m.trips[uid]...)
	if len(list) > limit {
		list = list[:limit]
	}
	m.trips[uid] = list
	return nil
}

func (m *memStore) List(_ context.Context, uid string) ([]Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]Trip(nil), m.trips[uid]...), nil
}

func (m *memStore) Clear(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.trips, uid)
	return nil
}

type fixedGoal float64

func (g fixedGoal) MonthlyGoal(context.Context, string) (float64, error) {
	return float64(g), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Trip
	err    error
}

func (p *recordingPublisher) TripSaved(_ context.Context, _ string, t Trip) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, t)
	return p.err
}

type captureWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

var errBoom = errors.New("boom")

func num(v float64) *float64 { return &v }

func validCommand() SaveCommand {
	return SaveCommand{
		OriginName:        " Home ",
		DestinationName:   "Office",
		OriginCoords:      &types.Coordinate{Lng: -122.42, Lat: 37.77},
		DestinationCoords: &types.Coordinate{Lng: -122.41, Lat: 37.79},
		Mode:              "Cycling",
		Distance:          num(3.4),
		Duration:          num(14),
		CO2Saved:          num(0.65),
		Calories:          num(136),
	}
}
