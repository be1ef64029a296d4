package ai

import (
	"context"
)

// Coach turns a user's travel summary into a short sustainability tip.
// Implementations can be swapped (Gemini today) without touching callers.
type Coach interface {
	EcoTip(ctx context.Context, in CoachContext) (*TipResult, error)
}
