package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fourthandshort/business/decision"
	"fourthandshort/domain"
	"fourthandshort/internal/modelstore"
	"fourthandshort/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const modelVersionHeader = "X-Model-Version"

type (
	DecisionHandler struct {
		validate        *validator.Validate
		decisionService DecisionService
	}

	DecisionService interface {
		Recommend(ctx context.Context, q domain.SituationQuery, versionOverride string) (domain.RecommendationResult, error)
		BulkRecommend(ctx context.Context, items []domain.SituationQuery, versionOverride string) []decision.ItemResult
		GameReport(gameID string) decision.GameReport
	}

	// RecommendParams binds /v1/recommend query parameters. Pointers keep
	// "missing" distinguishable from legitimate zero values.
	RecommendParams struct {
		Down            *int  `query:"down" validate:"required,min=1,max=4"`
		YardsToGo       *int  `query:"ydstogo" validate:"required,min=1,max=100"`
		Yardline        *int  `query:"yardline_100" validate:"required,min=1,max=99"`
		TimeRemaining   *int  `query:"time_remaining" validate:"required,min=0"`
		Quarter         *int  `query:"qtr" validate:"required,min=1,max=5"`
		ScoreDiff       *int  `query:"score_diff" validate:"required"`
		OffenseTimeouts *int  `query:"offense_timeouts" validate:"required,min=0,max=3"`
		DefenseTimeouts *int  `query:"defense_timeouts" validate:"required,min=0,max=3"`
		Home            *bool `query:"home" validate:"required"`
	}

	BulkRequest struct {
		Items []domain.SituationQuery `json:"items" validate:"required,min=1,dive"`
	}

	// BulkItemResponse carries either a recommendation or that item's
	// error; failed items never abort their siblings.
	BulkItemResponse struct {
		*domain.RecommendationResult
		Error string `json:"error,omitempty"`
	}

	BulkResponse struct {
		Items []BulkItemResponse `json:"items"`
	}

	ResponseError struct {
		Message string `json:"message"`
		Field   string `json:"field,omitempty"`
	}
)

func NewDecisionHandler(svc DecisionService) *DecisionHandler {
	return &DecisionHandler{
		validate:        validator.New(),
		decisionService: svc,
	}
}

// GET /v1/recommend
func (h *DecisionHandler) Recommend(c echo.Context) error {
	metrics.DecisionRequests.Inc()
	start := time.Now()

	var params RecommendParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&params); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	q := domain.SituationQuery{
		Down:             *params.Down,
		YardsToGo:        *params.YardsToGo,
		YardlineFromGoal: *params.Yardline,
		SecondsRemaining: *params.TimeRemaining,
		Quarter:          *params.Quarter,
		ScoreDiff:        *params.ScoreDiff,
		OffenseTimeouts:  *params.OffenseTimeouts,
		DefenseTimeouts:  *params.DefenseTimeouts,
		Home:             *params.Home,
	}

	ctx := context.WithValue(c.Request().Context(), decision.TraceIDKey, uuid.NewString())
	result, err := h.decisionService.Recommend(ctx, q, c.Request().Header.Get(modelVersionHeader))
	metrics.DecisionLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// POST /v1/bulk
func (h *DecisionHandler) Bulk(c echo.Context) error {
	start := time.Now()

	var req BulkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx := context.WithValue(c.Request().Context(), decision.TraceIDKey, uuid.NewString())
	items := h.decisionService.BulkRecommend(ctx, req.Items, c.Request().Header.Get(modelVersionHeader))
	metrics.DecisionLatency.Observe(time.Since(start).Seconds())
	metrics.BulkItems.Add(float64(len(items)))

	resp := BulkResponse{Items: make([]BulkItemResponse, len(items))}
	for i, item := range items {
		if item.Err != nil {
			resp.Items[i] = BulkItemResponse{Error: item.Err.Error()}
			continue
		}
		result := item.Result
		resp.Items[i] = BulkItemResponse{RecommendationResult: &result}
	}

	return c.JSON(http.StatusOK, resp)
}

// GET /v1/report?game_id=...
func (h *DecisionHandler) Report(c echo.Context) error {
	gameID := c.QueryParam("game_id")
	if gameID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "game_id is required", Field: "game_id"})
	}

	return c.JSON(http.StatusOK, h.decisionService.GameReport(gameID))
}

// writeError maps the error taxonomy onto HTTP statuses: validation is the
// client's fault; a missing artifact or a simulator inconsistency is ours.
func (h *DecisionHandler) writeError(c echo.Context, err error) error {
	var vErr *decision.ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: vErr.Message, Field: vErr.Field})
	}
	if errors.Is(err, modelstore.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
}

// GET /healthz
func Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
