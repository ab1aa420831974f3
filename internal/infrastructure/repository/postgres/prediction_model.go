package postgres

import (
	"database/sql"
	"time"
)

type predictionTableModel struct {
	ID            int64          `db:"id"`
	MatchID       int64          `db:"match_id"`
	UserID        sql.NullString `db:"user_id"`
	HomeTeamGoals int            `db:"home_team_goals"`
	AwayTeamGoals int            `db:"away_team_goals"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type predictionInsertModel struct {
	MatchID       int64   `db:"match_id"`
	UserID        *string `db:"user_id"`
	HomeTeamGoals int     `db:"home_team_goals"`
	AwayTeamGoals int     `db:"away_team_goals"`
}
