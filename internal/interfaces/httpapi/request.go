package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/match-predictor/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// predictionFields lists submission fields in the order errors are reported.
var predictionFields = []string{"match_id", "home_team_goals", "away_team_goals"}

type submitPredictionRequest struct {
	MatchID       *int64 `form:"match_id" validate:"required,gt=0"`
	HomeTeamGoals *int   `form:"home_team_goals" validate:"required,gte=0,lte=1000"`
	AwayTeamGoals *int   `form:"away_team_goals" validate:"required,gte=0,lte=1000"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// readSubmissionBody returns the raw submitted values keyed by field name. Form
// bodies yield strings; JSON bodies keep numbers as json numbers.
func readSubmissionBody(r *http.Request) (map[string]any, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxRequestBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("%w: invalid form payload: %v", usecase.ErrInvalidInput, err)
		}
		out := make(map[string]any, len(r.PostForm))
		for key := range r.PostForm {
			out[key] = r.PostForm.Get(key)
		}
		return out, nil
	default:
		out := make(map[string]any)
		decoder := jsoniter.NewDecoder(r.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&out); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
		}
		return out, nil
	}
}

// decodeSubmitPrediction reads and validates a prediction submission. Field
// problems come back as a *usecase.ValidationError; a malformed body is a plain
// ErrInvalidInput.
func (h *Handler) decodeSubmitPrediction(ctx context.Context, r *http.Request) (usecase.SubmitPredictionInput, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes)
	raw, err := readSubmissionBody(r)
	if err != nil {
		return usecase.SubmitPredictionInput{}, err
	}

	messages := make(map[string][]string)
	var req submitPredictionRequest
	for _, field := range predictionFields {
		value, present, ok := parseIntegerField(raw[field])
		if !ok {
			messages[field] = append(messages[field], fmt.Sprintf("The %s must be an integer.", humanizeField(field)))
			continue
		}
		if !present {
			continue
		}
		switch field {
		case "match_id":
			req.MatchID = &value
		case "home_team_goals":
			goals := clampGoals(value)
			req.HomeTeamGoals = &goals
		case "away_team_goals":
			goals := clampGoals(value)
			req.AwayTeamGoals = &goals
		}
	}

	if err := h.validator.StructCtx(ctx, req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return usecase.SubmitPredictionInput{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		for _, fe := range fieldErrs {
			field := fe.Field()
			if len(messages[field]) > 0 {
				continue
			}
			messages[field] = append(messages[field], validationMessage(fe))
		}
	}

	if len(messages) > 0 {
		verr := usecase.NewValidationError()
		for _, field := range predictionFields {
			for _, msg := range messages[field] {
				verr.Add(field, msg)
			}
		}
		return usecase.SubmitPredictionInput{}, verr
	}

	return usecase.SubmitPredictionInput{
		MatchID:       *req.MatchID,
		HomeTeamGoals: *req.HomeTeamGoals,
		AwayTeamGoals: *req.AwayTeamGoals,
	}, nil
}

// parseIntegerField reports whether raw carried a value and whether that value
// is an integer. Blank strings count as absent.
func parseIntegerField(raw any) (value int64, present bool, ok bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, true
		}
		n, err := strconv.ParseInt(s, 10, 64)
		return n, true, err == nil
	case interface{ Int64() (int64, error) }:
		n, err := v.Int64()
		return n, true, err == nil
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, true, false
		}
		return int64(v), true, true
	default:
		return 0, true, false
	}
}

// clampGoals keeps out-of-range counts out of int conversion; the lte rule
// rejects them afterwards.
func clampGoals(v int64) int {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int(v)
}

func validationMessage(fe validator.FieldError) string {
	name := humanizeField(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "gt":
		if fe.Field() == "match_id" {
			return "The selected match id is invalid."
		}
		return fmt.Sprintf("The %s must be greater than %s.", name, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be at least %s.", name, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s may not be greater than %s.", name, fe.Param())
	default:
		return fmt.Sprintf("The %s is invalid.", name)
	}
}

func humanizeField(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
