package training

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fourthandshort/business/models"
	"fourthandshort/domain"
	"fourthandshort/pkg/logger"

	"gorm.io/datatypes"
)

const (
	defaultRows     = 50_000
	defaultSeed     = 42
	holdoutFraction = 0.2
	epRidge         = 1.0
)

// ---- Repository interfaces ----

type LedgerRepository interface {
	Upsert(ctx context.Context, record domain.ModelRecord) error
}

// ArtifactWriter persists trained artifacts and publishes the version
// serving should pick up.
type ArtifactWriter interface {
	Save(name, version string, model, calibrator any, metadata map[string]float64, overwrite bool) (string, error)
	SetCurrentVersion(version string) error
}

// ---- Trainer ----

type Trainer struct {
	store  ArtifactWriter
	ledger LedgerRepository
}

func NewTrainer(store ArtifactWriter, ledger LedgerRepository) *Trainer {
	return &Trainer{store: store, ledger: ledger}
}

type Options struct {
	// Rows of synthetic history when CSVPath is empty. Defaults to 50000.
	Rows int
	// Seed drives the synthetic generator and the train/holdout split.
	Seed int64
	// CSVPath optionally points at an external play-by-play table.
	CSVPath string
	// Version token for the published artifacts. Defaults to the current
	// year-month.
	Version string
	// Overwrite consents to replacing artifacts at an existing version key.
	Overwrite bool
}

type Summary struct {
	Version      string  `json:"version"`
	EPMae        float64 `json:"ep_mae"`
	WPBrier      float64 `json:"wp_brier"`
	TrainSeconds float64 `json:"train_seconds"`
}

// Train fits the EP regressor and the calibrated WP classifier, persists
// both artifacts under one version token, publishes that token as current
// and upserts the validation metrics into the models ledger.
func (t *Trainer) Train(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()

	if opts.Rows <= 0 {
		opts.Rows = defaultRows
	}
	if opts.Seed == 0 {
		opts.Seed = defaultSeed
	}

	var ds *Dataset
	var err error
	if opts.CSVPath != "" {
		ds, err = LoadCSV(opts.CSVPath, opts.Seed)
		if err != nil {
			return nil, err
		}
	} else {
		ds = SyntheticHistory(opts.Rows, opts.Seed)
	}
	if ds.Len() < 10 {
		return nil, fmt.Errorf("training needs at least 10 rows, got %d", ds.Len())
	}

	trainIdx, valIdx := splitIndices(ds.Len(), holdoutFraction, opts.Seed)

	// EP model: regression on the 9 EP features, scored by held-out MAE.
	epModel, err := models.FitLinearRegression(
		gather(ds.EPFeatures, trainIdx),
		gatherVec(ds.EPTarget, trainIdx),
		epRidge,
	)
	if err != nil {
		return nil, fmt.Errorf("fit ep model: %w", err)
	}
	epPreds := make([]float64, len(valIdx))
	for i, idx := range valIdx {
		epPreds[i] = epModel.Predict(ds.EPFeatures[idx])
	}
	epMae := models.MeanAbsoluteError(gatherVec(ds.EPTarget, valIdx), epPreds)

	// WP model: base classifier on the 12 WP features, then a prefit
	// sigmoid calibration on the same training fold, scored by held-out
	// Brier.
	wpTrainX := gather(ds.WPFeatures, trainIdx)
	wpTrainY := gatherVec(ds.WinLabel, trainIdx)
	wpBase, err := models.FitLogisticRegression(wpTrainX, wpTrainY)
	if err != nil {
		return nil, fmt.Errorf("fit wp model: %w", err)
	}

	trainScores := make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		trainScores[i] = wpBase.DecisionFunction(ds.WPFeatures[idx])
	}
	calibrator, err := models.FitSigmoidCalibrator(trainScores, wpTrainY)
	if err != nil {
		return nil, fmt.Errorf("fit wp calibrator: %w", err)
	}

	calibrated := models.CalibratedClassifier{Base: wpBase, Calibrator: calibrator}
	wpProbs := make([]float64, len(valIdx))
	for i, idx := range valIdx {
		wpProbs[i] = calibrated.PredictProba(ds.WPFeatures[idx])
	}
	wpBrier := models.BrierScore(gatherVec(ds.WinLabel, valIdx), wpProbs)

	version := opts.Version
	if version == "" {
		version = time.Now().Format("2006-01")
	}

	if _, err := t.store.Save(domain.EPModelName, version, epModel, nil,
		map[string]float64{"mae": epMae}, opts.Overwrite); err != nil {
		return nil, fmt.Errorf("persist ep artifact: %w", err)
	}
	if _, err := t.store.Save(domain.WPModelName, version, wpBase, calibrator,
		map[string]float64{"brier": wpBrier}, opts.Overwrite); err != nil {
		return nil, fmt.Errorf("persist wp artifact: %w", err)
	}
	if err := t.store.SetCurrentVersion(version); err != nil {
		return nil, fmt.Errorf("publish version %s: %w", version, err)
	}

	records := []domain.ModelRecord{
		{Name: domain.EPModelName, Version: version, Metrics: datatypes.JSONMap{"mae": epMae}},
		{Name: domain.WPModelName, Version: version, Metrics: datatypes.JSONMap{"brier": wpBrier}},
	}
	for _, record := range records {
		if err := t.ledger.Upsert(ctx, record); err != nil {
			return nil, fmt.Errorf("record %s@%s metrics: %w", record.Name, version, err)
		}
	}

	summary := &Summary{
		Version:      version,
		EPMae:        epMae,
		WPBrier:      wpBrier,
		TrainSeconds: time.Since(start).Seconds(),
	}

	logger.Info("training complete",
		"version", summary.Version,
		"rows", ds.Len(),
		"ep_mae", summary.EPMae,
		"wp_brier", summary.WPBrier,
		"train_seconds", summary.TrainSeconds,
	)

	return summary, nil
}

// splitIndices shuffles row indices with the given seed and carves off the
// holdout fraction. The split is independent of the synthetic generator's
// draw sequence.
func splitIndices(n int, holdout float64, seed int64) (train, val []int) {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(seed + 1))
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	cut := n - int(float64(n)*holdout)
	return idx[:cut], idx[cut:]
}

func gather(rows [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

func gatherVec(vals []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = vals[j]
	}
	return out
}
