// README: Preference stores backed by PostgreSQL and MongoDB.
package preference

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store interface {
	// Get returns ErrNotFound when the user never saved preferences.
	Get(ctx context.Context, uid string) (Preferences, error)
	Put(ctx context.Context, uid string, p Preferences) error
}

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Get(ctx context.Context, uid string) (Preferences, error) {
	var p Preferences
	var priority *string
	err := s.db.QueryRow(ctx, `
		SELECT transport_modes, max_walking_km, max_cycling_km, priority, monthly_goal_kg, updated_at
		FROM preferences
		WHERE uid = $1`, uid,
	).Scan(&p.TransportModes, &p.MaxWalkingDistance, &p.MaxCyclingDistance, &priority, &p.MonthlyGoal, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Preferences{}, ErrNotFound
	}
	if err != nil {
		return Preferences{}, err
	}
	if priority != nil {
		p.SustainabilityPriority = *priority
	}
	return p, nil
}

func (s *PGStore) Put(ctx context.Context, uid string, p Preferences) error {
	var priority *string
	if p.SustainabilityPriority != "" {
		priority = &p.SustainabilityPriority
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO preferences (uid, transport_modes, max_walking_km, max_cycling_km, priority, monthly_goal_kg, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (uid) DO UPDATE SET
			transport_modes = EXCLUDED.transport_modes,
			max_walking_km  = EXCLUDED.max_walking_km,
			max_cycling_km  = EXCLUDED.max_cycling_km,
			priority        = EXCLUDED.priority,
			monthly_goal_kg = EXCLUDED.monthly_goal_kg,
			updated_at      = EXCLUDED.updated_at`,
		uid, p.TransportModes, p.MaxWalkingDistance, p.MaxCyclingDistance, priority, p.MonthlyGoal, p.UpdatedAt,
	)
	return err
}

// MongoStore keeps preferences as a sub-document of the user document.
type MongoStore struct {
	users *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{users: db.Collection("users")}
}

func (s *MongoStore) Get(ctx context.Context, uid string) (Preferences, error) {
	var doc struct {
		Preferences *Preferences `bson:"preferences"`
	}
	err := s.users.FindOne(ctx, bson.M{"_id": uid},
		options.FindOne().SetProjection(bson.M{"preferences": 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Preferences{}, ErrNotFound
	}
	if err != nil {
		return Preferences{}, err
	}
	if doc.Preferences == nil {
		return Preferences{}, ErrNotFound
	}
	return *doc.Preferences, nil
}

func (s *MongoStore) Put(ctx context.Context, uid string, p Preferences) error {
	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"preferences": p}},
		options.Update().SetUpsert(true),
	)
	return err
}
