package prediction

import (
	"fmt"
	"strings"
	"time"
)

// Prediction is a forecast of a match's final score. UserID is nil when the
// submission came from an anonymous session.
type Prediction struct {
	ID            int64
	MatchID       int64
	UserID        *string
	HomeTeamGoals int
	AwayTeamGoals int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Prediction) Validate() error {
	if p.MatchID <= 0 {
		return fmt.Errorf("match id must be > 0")
	}
	if p.HomeTeamGoals < 0 {
		return fmt.Errorf("home team goals must be >= 0")
	}
	if p.AwayTeamGoals < 0 {
		return fmt.Errorf("away team goals must be >= 0")
	}
	if p.UserID != nil && strings.TrimSpace(*p.UserID) == "" {
		return fmt.Errorf("user id cannot be blank when set")
	}

	return nil
}

func (p Prediction) IsAnonymous() bool {
	return p.UserID == nil
}
