package postgres

import "database/sql"

type standingRowModel struct {
	GroupLabel string         `db:"group_label"`
	TeamID     int64          `db:"id"`
	Name       string         `db:"name"`
	Crest      sql.NullString `db:"crest"`
}
