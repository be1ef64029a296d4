// README: Trip history stores backed by PostgreSQL and MongoDB.
package trip

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
	// Append adds t as the user's newest trip and keeps only the newest limit trips.
	Append(ctx context.Context, uid string, t Trip, limit int) error
	// List returns the user's trips, newest first.
	List(ctx context.Context, uid string) ([]Trip, error)
	Clear(ctx context.Context, uid string) error
}

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Append(ctx context.Context, uid string, t Trip, limit int) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO trips (
				id, uid, origin_name, destination_name,
				origin_lng, origin_lat, destination_lng, destination_lat,
				mode, distance_km, duration_min, co2_saved_kg, calories, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			t.ID, uid, t.OriginName, t.DestinationName,
			t.OriginCoords.Lng, t.OriginCoords.Lat, t.DestinationCoords.Lng, t.DestinationCoords.Lat,
			t.Mode, t.Distance, t.Duration, t.CO2Saved, t.Calories, t.Date,
		); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			DELETE FROM trips
			WHERE uid = $1 AND id NOT IN (
				SELECT id FROM trips WHERE uid = $1
				ORDER BY created_at DESC, id DESC
				LIMIT $2
			)`, uid, limit)
		return err
	})
}

func (s *PGStore) List(ctx context.Context, uid string) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id::text, origin_name, destination_name,
		       origin_lng, origin_lat, destination_lng, destination_lat,
		       mode, distance_km, duration_min, co2_saved_kg, calories, created_at
		FROM trips
		WHERE uid = $1
		ORDER BY created_at DESC, id DESC`, uid)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Trip, error) {
		var t Trip
		err := row.Scan(
			&t.ID, &t.OriginName, &t.DestinationName,
			&t.OriginCoords.Lng, &t.OriginCoords.Lat, &t.DestinationCoords.Lng, &t.DestinationCoords.Lat,
			&t.Mode, &t.Distance, &t.Duration, &t.CO2Saved, &t.Calories, &t.Date,
		)
		return t, err
	})
}

func (s *PGStore) Clear(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM trips WHERE uid = $1`, uid)
	return err
}

// MongoStore keeps history as the tripHistory array of the user document,
// newest entry at index 0.
type MongoStore struct {
	users *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{users: db.Collection("users")}
}

func (s *MongoStore) Append(ctx context.Context, uid string, t Trip, limit int) error {
	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$push": bson.M{"tripHistory": bson.M{
			"$each":     []Trip{t},
			"$position": 0,
			"$slice":    limit,
		}}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) List(ctx context.Context, uid string) ([]Trip, error) {
	var doc struct {
		TripHistory []Trip `bson:"tripHistory"`
	}
	err := s.users.FindOne(ctx, bson.M{"_id": uid},
		options.FindOne().SetProjection(bson.M{"tripHistory": 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.TripHistory, nil
}

func (s *MongoStore) Clear(ctx context.Context, uid string) error {
	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"tripHistory": bson.A{}}},
	)
	return err
}
