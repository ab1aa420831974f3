package team

import "strings"

// Team is a club taking part in a group stage.
type Team struct {
	ID    int64
	Name  string
	Crest string
}

// DisplayName returns "TBD" for teams whose name was never imported.
func (t Team) DisplayName() string {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "TBD"
	}
	return name
}
