package coach

import "errors"

// ErrInsufficientTokens is returned when a user has no tokens remaining for the current month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultTokens is the number of tokens granted per month.
const DefaultTokens = 100

// Tip is what a coach request returns to the client.
type Tip struct {
	Tip             string `json:"tip"`
	FocusMode       string `json:"focusMode"`
	TokensRemaining int    `json:"tokensRemaining"`
}
