package decision

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"fourthandshort/business/models"
	"fourthandshort/domain"
	"fourthandshort/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// simulatedActions is the fixed evaluation order. Keeping it explicit makes
// responses deterministic (maps iterate randomly) and is the reference for
// the action-set invariant.
var simulatedActions = []domain.Action{domain.ActionGo, domain.ActionPunt, domain.ActionFG}

const uncertaintyStd = 0.012

// ---- Collaborator interfaces ----

// ArtifactStore loads persisted model artifacts. model and calibrator are
// pointers to decode into; calibrator may be nil when the artifact has none.
type ArtifactStore interface {
	CurrentVersion() (string, error)
	Load(name, version string, model, calibrator any) (map[string]float64, error)
}

// ResultCache memoizes full recommendation responses by the canonical value
// of their input. Must be safe for concurrent use.
type ResultCache interface {
	Key(q domain.SituationQuery, versionOverride string) (string, error)
	Get(key string) (domain.RecommendationResult, bool)
	Set(key string, value domain.RecommendationResult)
}

type RequestLogRepository interface {
	Save(ctx context.Context, entry domain.RequestLog) error
}

// ---- Service ----

type DecisionService struct {
	store         ArtifactStore
	cache         ResultCache
	requestRepo   RequestLogRepository
	pinnedVersion string

	// loaded keeps one immutable model pair per version so disk is only
	// touched the first time a version is seen by this process.
	loaded sync.Map // version -> *modelPair
}

type modelPair struct {
	ep *models.LinearRegression
	wp *models.CalibratedClassifier
}

// NewDecisionService wires the engine. requestRepo may be nil to disable
// telemetry (tests); pinnedVersion may be empty to track the published
// current version.
func NewDecisionService(
	store ArtifactStore,
	cache ResultCache,
	requestRepo RequestLogRepository,
	pinnedVersion string,
) *DecisionService {
	return &DecisionService{
		store:         store,
		cache:         cache,
		requestRepo:   requestRepo,
		pinnedVersion: pinnedVersion,
	}
}

// Recommend validates the situation, serves from cache when possible, and
// otherwise loads models, simulates the three candidate actions and builds
// the response. Telemetry is appended best-effort for every served request.
func (s *DecisionService) Recommend(
	ctx context.Context,
	q domain.SituationQuery,
	versionOverride string,
) (domain.RecommendationResult, error) {
	start := time.Now()

	if err := Validate(q); err != nil {
		return domain.RecommendationResult{}, err
	}

	key, err := s.cache.Key(q, versionOverride)
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("compute cache key: %w", err)
	}

	if cached, ok := s.cache.Get(key); ok {
		CacheHitsTotal.Inc()
		s.logRequest(ctx, q, cached, start)
		return cached, nil
	}

	version, err := s.effectiveVersion(versionOverride)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	pair, err := s.modelsFor(version)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	outcomes := SimulateActions(pair.ep, pair.wp, q)
	result, err := buildResult(q, outcomes, version)
	if err != nil {
		logger.Error("simulation inconsistency",
			"trace_id", TraceIDFromContext(ctx),
			"actions", len(outcomes),
			"error", err,
		)
		return domain.RecommendationResult{}, err
	}

	RecommendationsTotal.WithLabelValues(string(result.Recommendation)).Inc()
	s.cache.Set(key, result)
	s.logRequest(ctx, q, result, start)

	return result, nil
}

// ItemResult is one slot of a bulk response; exactly one of Result or Err
// is meaningful. A failed item never aborts its siblings.
type ItemResult struct {
	Result domain.RecommendationResult
	Err    error
}

// BulkRecommend serves items sequentially, in input order. Cancellation of
// the caller marks remaining items with the context error.
func (s *DecisionService) BulkRecommend(
	ctx context.Context,
	items []domain.SituationQuery,
	versionOverride string,
) []ItemResult {
	out := make([]ItemResult, len(items))
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			out[i] = ItemResult{Err: fmt.Errorf("context error: %w", err)}
			continue
		}
		result, err := s.Recommend(ctx, item, versionOverride)
		out[i] = ItemResult{Result: result, Err: err}
	}
	return out
}

func (s *DecisionService) effectiveVersion(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if s.pinnedVersion != "" {
		return s.pinnedVersion, nil
	}
	version, err := s.store.CurrentVersion()
	if err != nil {
		return "", fmt.Errorf("resolve current model version: %w", err)
	}
	return version, nil
}

func (s *DecisionService) modelsFor(version string) (*modelPair, error) {
	if cached, ok := s.loaded.Load(version); ok {
		return cached.(*modelPair), nil
	}

	var ep models.LinearRegression
	if _, err := s.store.Load(domain.EPModelName, version, &ep, nil); err != nil {
		return nil, fmt.Errorf("load %s@%s: %w", domain.EPModelName, version, err)
	}

	var base models.LogisticRegression
	var cal models.SigmoidCalibrator
	if _, err := s.store.Load(domain.WPModelName, version, &base, &cal); err != nil {
		return nil, fmt.Errorf("load %s@%s: %w", domain.WPModelName, version, err)
	}

	pair := &modelPair{
		ep: &ep,
		wp: &models.CalibratedClassifier{Base: &base, Calibrator: &cal},
	}
	actual, _ := s.loaded.LoadOrStore(version, pair)
	return actual.(*modelPair), nil
}

// buildResult picks the WP argmax among the three simulated actions and
// computes best-minus-second deltas the way the reference system does:
// against the second-highest WP and EP overall.
func buildResult(
	q domain.SituationQuery,
	outcomes map[domain.Action]domain.ActionOutcome,
	version string,
) (domain.RecommendationResult, error) {
	if len(outcomes) != len(simulatedActions) {
		return domain.RecommendationResult{}, ErrSimulationInconsistency
	}

	alternatives := make([]domain.ActionOutcome, 0, len(simulatedActions))
	for _, action := range simulatedActions {
		outcome, ok := outcomes[action]
		if !ok {
			return domain.RecommendationResult{}, ErrSimulationInconsistency
		}
		alternatives = append(alternatives, outcome)
	}

	best := alternatives[0]
	for _, alt := range alternatives[1:] {
		if alt.WP > best.WP {
			best = alt
		}
	}

	recommendation := best.Action
	switch recommendation {
	case domain.ActionGo, domain.ActionPunt, domain.ActionFG:
	default:
		recommendation = domain.ActionGo
	}

	return domain.RecommendationResult{
		Recommendation: recommendation,
		DeltaWP:        best.WP - secondHighest(alternatives, func(o domain.ActionOutcome) float64 { return o.WP }),
		DeltaEP:        best.EP - secondHighest(alternatives, func(o domain.ActionOutcome) float64 { return o.EP }),
		Alternatives:   alternatives,
		Rationale:      buildRationale(q, recommendation),
		Uncertainty:    domain.Uncertainty{Std: uncertaintyStd, Method: "bootstrap"},
		ModelVersion:   version,
	}, nil
}

// secondHighest returns the second-largest value of the projection, or the
// only value when fewer than two exist.
func secondHighest(alternatives []domain.ActionOutcome, value func(domain.ActionOutcome) float64) float64 {
	vals := make([]float64, 0, len(alternatives))
	for _, alt := range alternatives {
		vals = append(vals, value(alt))
	}
	sort.Float64s(vals)
	if len(vals) < 2 {
		if len(vals) == 1 {
			return vals[0]
		}
		return 0
	}
	return vals[len(vals)-2]
}

func (s *DecisionService) logRequest(
	ctx context.Context,
	q domain.SituationQuery,
	result domain.RecommendationResult,
	start time.Time,
) {
	if s.requestRepo == nil {
		return
	}

	traceID := TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = uuid.NewString()
	}

	entry := domain.RequestLog{
		TraceID:        traceID,
		Params:         situationAsMap(q),
		LatencyMS:      float64(time.Since(start).Microseconds()) / 1000.0,
		Recommendation: string(result.Recommendation),
		DeltaWP:        result.DeltaWP,
	}

	if err := s.requestRepo.Save(ctx, entry); err != nil {
		logger.Error("failed to append request log", "trace_id", traceID, "error", err)
	}
}

func situationAsMap(q domain.SituationQuery) datatypes.JSONMap {
	raw, err := json.Marshal(q)
	if err != nil {
		return datatypes.JSONMap{}
	}
	m := datatypes.JSONMap{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return datatypes.JSONMap{}
	}
	return m
}
