package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/match-predictor/internal/domain/match"
)

// MatchPageSize is the fixed number of matches returned per page.
const MatchPageSize = 2

type MatchPage struct {
	Items       []match.Match
	CurrentPage int
	PerPage     int
	Total       int
}

// LastPage is never below 1, even for an empty store.
func (p MatchPage) LastPage() int {
	if p.Total <= 0 || p.PerPage <= 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// From is the 1-based position of the first item, or 0 when the page is empty
// or lies past the last page.
func (p MatchPage) From() int {
	if len(p.Items) == 0 || p.CurrentPage < 1 || p.CurrentPage > p.LastPage() {
		return 0
	}
	return (p.CurrentPage-1)*p.PerPage + 1
}

func (p MatchPage) To() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.From() + len(p.Items) - 1
}

type MatchService struct {
	matchRepo match.Repository
}

func NewMatchService(matchRepo match.Repository) *MatchService {
	return &MatchService{matchRepo: matchRepo}
}

func (s *MatchService) List(ctx context.Context, page int) (MatchPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	if page < 1 {
		page = 1
	}

	total, err := s.matchRepo.Count(ctx)
	if err != nil {
		return MatchPage{}, fmt.Errorf("count matches: %w", err)
	}

	out := MatchPage{
		Items:       []match.Match{},
		CurrentPage: page,
		PerPage:     MatchPageSize,
		Total:       total,
	}

	// Compare pages before multiplying so huge page numbers cannot wrap the offset.
	if total <= 0 || page > out.LastPage() {
		return out, nil
	}

	items, err := s.matchRepo.List(ctx, MatchPageSize, (page-1)*MatchPageSize)
	if err != nil {
		return MatchPage{}, fmt.Errorf("list matches: %w", err)
	}
	if len(items) > MatchPageSize {
		items = items[:MatchPageSize]
	}
	out.Items = items

	return out, nil
}

func (s *MatchService) Get(ctx context.Context, id int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	if id <= 0 {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, id)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, id)
	}

	return item, nil
}
