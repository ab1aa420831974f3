package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/riskibarqy/match-predictor/internal/domain/match"
	"github.com/riskibarqy/match-predictor/internal/domain/team"
	matchmock "github.com/riskibarqy/match-predictor/internal/mocks/domain/match"
	"github.com/stretchr/testify/mock"
)

func sampleMatches() []match.Match {
	return []match.Match{
		{
			ID:        1,
			Group:     "A",
			HomeTeam:  team.Team{ID: 1, Name: "Russia"},
			AwayTeam:  team.Team{ID: 2, Name: "Saudi Arabia"},
			KickoffAt: time.Date(2018, 6, 14, 15, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			Group:     "A",
			HomeTeam:  team.Team{ID: 3, Name: "Egypt"},
			AwayTeam:  team.Team{ID: 4, Name: "Uruguay"},
			KickoffAt: time.Date(2018, 6, 15, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestMatchService_List_FirstPage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(matchRepo)

	matchRepo.On("Count", ctx).Return(5, nil).Once()
	matchRepo.On("List", ctx, MatchPageSize, 0).Return(sampleMatches(), nil).Once()

	page, err := service.List(ctx, 1)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("unexpected item count: got=%d want=2", len(page.Items))
	}
	if page.LastPage() != 3 {
		t.Fatalf("unexpected last page: got=%d want=3", page.LastPage())
	}
	if page.From() != 1 || page.To() != 2 {
		t.Fatalf("unexpected range: from=%d to=%d", page.From(), page.To())
	}
}

func TestMatchService_List_PageBelowOneIsFirstPage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(matchRepo)

	matchRepo.On("Count", ctx).Return(2, nil).Once()
	matchRepo.On("List", ctx, MatchPageSize, 0).Return(sampleMatches(), nil).Once()

	page, err := service.List(ctx, -3)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if page.CurrentPage != 1 {
		t.Fatalf("expected page 1, got %d", page.CurrentPage)
	}
}

func TestMatchService_List_PagePastEndIsEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(matchRepo)

	matchRepo.On("Count", ctx).Return(3, nil).Once()

	page, err := service.List(ctx, 9)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %+v", page.Items)
	}
	if page.From() != 0 || page.To() != 0 {
		t.Fatalf("unexpected range on empty page: from=%d to=%d", page.From(), page.To())
	}
	matchRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestMatchService_List_HugePageDoesNotWrapOffset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(matchRepo)

	matchRepo.On("Count", ctx).Return(8, nil).Once()

	page, err := service.List(ctx, math.MaxInt)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(page.Items))
	}
	if page.From() != 0 || page.To() != 0 {
		t.Fatalf("unexpected range: from=%d to=%d", page.From(), page.To())
	}
	matchRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestMatchService_List_RepositoryError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(matchRepo)

	storeErr := errors.New("connection refused")
	matchRepo.On("Count", ctx).Return(0, storeErr).Once()

	if _, err := service.List(ctx, 1); !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestMatchPage_LastPageOnEmptyStore(t *testing.T) {
	t.Parallel()

	page := MatchPage{CurrentPage: 1, PerPage: MatchPageSize}
	if page.LastPage() != 1 {
		t.Fatalf("expected last page 1, got %d", page.LastPage())
	}
}

func TestMatchService_Get(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(matchRepo)

	expected := sampleMatches()[1]
	matchRepo.On("GetByID", ctx, int64(2)).Return(expected, true, nil).Once()

	got, err := service.Get(ctx, 2)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if got.ID != expected.ID {
		t.Fatalf("unexpected match id: got=%d want=%d", got.ID, expected.ID)
	}
}

func TestMatchService_Get_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(matchRepo)

	matchRepo.On("GetByID", ctx, int64(404)).Return(match.Match{}, false, nil).Once()

	if _, err := service.Get(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_Get_NonPositiveIDIsNotFound(t *testing.T) {
	t.Parallel()

	service := NewMatchService(matchmock.NewRepository(t))
	if _, err := service.Get(context.Background(), 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
