package postgres

import (
	"database/sql"
	"time"
)

// matchRowModel is a schedule row joined with both of its teams.
type matchRowModel struct {
	ID           int64          `db:"id"`
	GroupLabel   string         `db:"group_label"`
	KickoffAt    time.Time      `db:"kickoff_at"`
	HomeTeamID   int64          `db:"home_team_id"`
	HomeTeamName sql.NullString `db:"home_team_name"`
	HomeCrest    sql.NullString `db:"home_team_crest"`
	AwayTeamID   int64          `db:"away_team_id"`
	AwayTeamName sql.NullString `db:"away_team_name"`
	AwayCrest    sql.NullString `db:"away_team_crest"`
}

type countModel struct {
	Total int `db:"total"`
}
