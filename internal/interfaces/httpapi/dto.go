package httpapi

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/riskibarqy/match-predictor/internal/domain/match"
	"github.com/riskibarqy/match-predictor/internal/domain/prediction"
	"github.com/riskibarqy/match-predictor/internal/domain/team"
	"github.com/riskibarqy/match-predictor/internal/usecase"
)

const predictionAckMessage = "Mail succesfully added"

type teamDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Crest string `json:"crest"`
}

type matchDTO struct {
	ID        int64   `json:"id"`
	Group     string  `json:"group"`
	HomeTeam  teamDTO `json:"home_team"`
	AwayTeam  teamDTO `json:"away_team"`
	KickoffAt string  `json:"kickoff_at"`
}

type predictionDTO struct {
	ID            int64   `json:"id"`
	MatchID       int64   `json:"match_id"`
	UserID        *string `json:"user_id"`
	HomeTeamGoals int     `json:"home_team_goals"`
	AwayTeamGoals int     `json:"away_team_goals"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type predictionAckDTO struct {
	Status  bool          `json:"status"`
	Message string        `json:"message"`
	Emails  predictionDTO `json:"emails"`
}

type validationErrorDTO struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type collectionLinksDTO struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type collectionMetaDTO struct {
	CurrentPage int    `json:"current_page"`
	From        *int   `json:"from"`
	LastPage    int    `json:"last_page"`
	Path        string `json:"path"`
	PerPage     int    `json:"per_page"`
	To          *int   `json:"to"`
	Total       int    `json:"total"`
}

type matchCollectionDTO struct {
	Data  []matchDTO         `json:"data"`
	Links collectionLinksDTO `json:"links"`
	Meta  collectionMetaDTO  `json:"meta"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{ID: t.ID, Name: t.DisplayName(), Crest: t.Crest}
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:        m.ID,
		Group:     m.Group,
		HomeTeam:  teamToDTO(m.HomeTeam),
		AwayTeam:  teamToDTO(m.AwayTeam),
		KickoffAt: formatTime(m.KickoffAt),
	}
}

func predictionToDTO(p prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:            p.ID,
		MatchID:       p.MatchID,
		UserID:        p.UserID,
		HomeTeamGoals: p.HomeTeamGoals,
		AwayTeamGoals: p.AwayTeamGoals,
		CreatedAt:     formatTime(p.CreatedAt),
		UpdatedAt:     formatTime(p.UpdatedAt),
	}
}

func predictionAckToDTO(p prediction.Prediction) predictionAckDTO {
	return predictionAckDTO{
		Status:  true,
		Message: predictionAckMessage,
		Emails:  predictionToDTO(p),
	}
}

func validationErrorToDTO(verr *usecase.ValidationError) validationErrorDTO {
	fields := make(map[string][]string, len(verr.Fields))
	for name, messages := range verr.Fields {
		fields[name] = append([]string(nil), messages...)
	}
	return validationErrorDTO{
		Message: verr.Message(),
		Errors:  fields,
	}
}

// matchPageToDTO builds the paginated collection. Links are absolute and keep
// every query parameter of the request except page.
func matchPageToDTO(r *http.Request, page usecase.MatchPage) matchCollectionDTO {
	items := make([]matchDTO, 0, len(page.Items))
	for _, m := range page.Items {
		items = append(items, matchToDTO(m))
	}

	path := requestBaseURL(r) + r.URL.Path
	lastPage := page.LastPage()
	links := collectionLinksDTO{
		First: pageURL(path, r.URL.Query(), 1),
		Last:  pageURL(path, r.URL.Query(), lastPage),
	}
	if page.CurrentPage > 1 {
		prev := pageURL(path, r.URL.Query(), page.CurrentPage-1)
		links.Prev = &prev
	}
	if page.CurrentPage < lastPage {
		next := pageURL(path, r.URL.Query(), page.CurrentPage+1)
		links.Next = &next
	}

	meta := collectionMetaDTO{
		CurrentPage: page.CurrentPage,
		LastPage:    lastPage,
		Path:        path,
		PerPage:     page.PerPage,
		Total:       page.Total,
	}
	if len(page.Items) > 0 {
		from, to := page.From(), page.To()
		meta.From = &from
		meta.To = &to
	}

	return matchCollectionDTO{Data: items, Links: links, Meta: meta}
}

func pageURL(path string, query url.Values, page int) string {
	q := url.Values{}
	for key, values := range query {
		q[key] = append([]string(nil), values...)
	}
	q.Set("page", strconv.Itoa(page))
	return path + "?" + q.Encode()
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
