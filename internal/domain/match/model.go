package match

import (
	"time"

	"github.com/riskibarqy/match-predictor/internal/domain/team"
)

// Match represents one scheduled fixture. Rows are written by the data import
// process and only read here.
type Match struct {
	ID        int64
	Group     string
	HomeTeam  team.Team
	AwayTeam  team.Team
	KickoffAt time.Time
}
