package standing

import "github.com/riskibarqy/match-predictor/internal/domain/team"

// Standing is one group of the standings page with its teams in table order.
type Standing struct {
	Group string
	Teams []team.Team
}
