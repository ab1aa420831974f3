package memory

import (
	"time"

	"github.com/riskibarqy/match-predictor/internal/domain/match"
	"github.com/riskibarqy/match-predictor/internal/domain/standing"
	"github.com/riskibarqy/match-predictor/internal/domain/team"
)

type seedTeam struct {
	team  team.Team
	group string
}

var seedTeams = []seedTeam{
	{team: team.Team{ID: 1, Name: "Russia", Crest: "/img/crests/rus.png"}, group: "A"},
	{team: team.Team{ID: 2, Name: "Saudi Arabia", Crest: "/img/crests/ksa.png"}, group: "A"},
	{team: team.Team{ID: 3, Name: "Egypt", Crest: "/img/crests/egy.png"}, group: "A"},
	{team: team.Team{ID: 4, Name: "Uruguay", Crest: "/img/crests/uru.png"}, group: "A"},
	{team: team.Team{ID: 5, Name: "Portugal", Crest: "/img/crests/por.png"}, group: "B"},
	{team: team.Team{ID: 6, Name: "Spain", Crest: "/img/crests/esp.png"}, group: "B"},
	{team: team.Team{ID: 7, Name: "Morocco", Crest: "/img/crests/mar.png"}, group: "B"},
	{team: team.Team{ID: 8, Name: "Iran", Crest: "/img/crests/irn.png"}, group: "B"},
}

func SeedTeams() []team.Team {
	out := make([]team.Team, 0, len(seedTeams))
	for _, item := range seedTeams {
		out = append(out, item.team)
	}
	return out
}

// SeedStandings groups the seeded teams in seed order.
func SeedStandings() []standing.Standing {
	out := make([]standing.Standing, 0, 2)
	for _, item := range seedTeams {
		if len(out) == 0 || out[len(out)-1].Group != item.group {
			out = append(out, standing.Standing{Group: item.group})
		}
		out[len(out)-1].Teams = append(out[len(out)-1].Teams, item.team)
	}
	return out
}

func SeedMatches() []match.Match {
	teams := SeedTeams()
	byID := make(map[int64]team.Team, len(teams))
	for _, item := range teams {
		byID[item.ID] = item
	}

	kickoff := func(day, hour int) time.Time {
		return time.Date(2018, time.June, day, hour, 0, 0, 0, time.UTC)
	}

	return []match.Match{
		{ID: 1, Group: "A", HomeTeam: byID[1], AwayTeam: byID[2], KickoffAt: kickoff(14, 15)},
		{ID: 2, Group: "A", HomeTeam: byID[3], AwayTeam: byID[4], KickoffAt: kickoff(15, 12)},
		{ID: 3, Group: "B", HomeTeam: byID[7], AwayTeam: byID[8], KickoffAt: kickoff(15, 15)},
		{ID: 4, Group: "B", HomeTeam: byID[5], AwayTeam: byID[6], KickoffAt: kickoff(15, 18)},
		{ID: 5, Group: "A", HomeTeam: byID[1], AwayTeam: byID[3], KickoffAt: kickoff(19, 18)},
	}
}
