// README: Trip history entries and the save command that produces them.
package trip

import (
	"errors"
	"strings"
	"time"

	"ecoroute/internal/types"
)

var (
	ErrInvalid  = errors.New("invalid trip")
	ErrNotFound = errors.New("trip not found")
)

// HistoryLimit is the number of trips kept per user.
const HistoryLimit = 100

type Trip struct {
	ID                string           `json:"id" bson:"id"`
	OriginName        string           `json:"originName" bson:"originName"`
	DestinationName   string           `json:"destinationName" bson:"destinationName"`
	OriginCoords      types.Coordinate `json:"originCoords" bson:"originCoords"`
	DestinationCoords types.Coordinate `json:"destinationCoords" bson:"destinationCoords"`
	Mode              string           `json:"mode" bson:"mode"`
	Distance          float64          `json:"distance" bson:"distance"`
	Duration          int              `json:"duration" bson:"duration"`
	CO2Saved          float64          `json:"co2Saved" bson:"co2Saved"`
	Calories          int              `json:"calories" bson:"calories"`
	Date              time.Time        `json:"date" bson:"date"`
}

// SaveCommand is the client payload for a trip. Pointer fields distinguish
// missing values from zero.
type SaveCommand struct {
	OriginName        string            `json:"originName"`
	DestinationName   string            `json:"destinationName"`
	OriginCoords      *types.Coordinate `json:"originCoords"`
	DestinationCoords *types.Coordinate `json:"destinationCoords"`
	Mode              string            `json:"mode"`
	Distance          *float64          `json:"distance"`
	Duration          *float64          `json:"duration"`
	CO2Saved          *float64          `json:"co2Saved"`
	Calories          *float64          `json:"calories"`
}

// ValidationError lists every problem found in a SaveCommand.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }
