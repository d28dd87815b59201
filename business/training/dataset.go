package training

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"

	"fourthandshort/business/models"
)

// Dataset holds feature matrices in the fixed schema order consumed by the
// models: 9 EP features, 12 WP features (EP + possession + strengths).
type Dataset struct {
	EPFeatures [][]float64
	WPFeatures [][]float64
	EPTarget   []float64
	WinLabel   []float64
}

func (d *Dataset) Len() int {
	return len(d.EPTarget)
}

// groundTruthEP is the hand-specified linear formula for the synthetic
// expected-points target: closer to the end zone, more elapsed time, a
// better score and home field all push EP up; long to-go and later downs
// push it down.
func groundTruthEP(down, ydstogo, yardline, timeRemaining, scoreDiff, home float64) float64 {
	return 0.08*yardline +
		0.02*(3600.0-timeRemaining)/60.0 +
		0.05*scoreDiff -
		0.1*math.Max(ydstogo-3.0, 0) -
		0.15*(down-1.0) +
		0.05*home
}

// SyntheticHistory draws n plays uniformly across the feature ranges, with
// the linear ground-truth EP formula (plus noise) and a logistic transform
// for the synthetic win label. Deterministic per seed.
func SyntheticHistory(n int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))

	ds := &Dataset{
		EPFeatures: make([][]float64, 0, n),
		WPFeatures: make([][]float64, 0, n),
		EPTarget:   make([]float64, 0, n),
		WinLabel:   make([]float64, 0, n),
	}

	for range n {
		down := float64(1 + rng.Intn(4))
		ydstogo := float64(1 + rng.Intn(19))
		yardline := float64(1 + rng.Intn(98))
		qtr := float64(1 + rng.Intn(4))
		timeRemaining := float64(rng.Intn(3600))
		scoreDiff := float64(-28 + rng.Intn(56))
		offenseTimeouts := float64(rng.Intn(4))
		defenseTimeouts := float64(rng.Intn(4))
		home := float64(rng.Intn(2))
		strengthOff := rng.NormFloat64()
		strengthDef := rng.NormFloat64()

		epTarget := groundTruthEP(down, ydstogo, yardline, timeRemaining, scoreDiff, home) +
			rng.NormFloat64()*0.7

		linWP := 0.15*epTarget +
			0.002*timeRemaining +
			0.06*scoreDiff +
			0.05*home +
			0.03*strengthOff -
			0.03*strengthDef
		win := 0.0
		if rng.Float64() < models.Sigmoid(linWP) {
			win = 1.0
		}

		ep := []float64{down, ydstogo, yardline, qtr, timeRemaining, scoreDiff, offenseTimeouts, defenseTimeouts, home}
		wp := append(append([]float64{}, ep...), 1.0, strengthOff, strengthDef)

		ds.EPFeatures = append(ds.EPFeatures, ep)
		ds.WPFeatures = append(ds.WPFeatures, wp)
		ds.EPTarget = append(ds.EPTarget, epTarget)
		ds.WinLabel = append(ds.WinLabel, win)
	}

	return ds
}

// Column mapping for externally supplied play-by-play tables. Source
// columns follow the nflfastR naming; the schema column name itself always
// works as a fallback.
var csvColumnSources = map[string]string{
	"down":             "down",
	"ydstogo":          "ydstogo",
	"yardline_100":     "yardline_100",
	"qtr":              "qtr",
	"time_remaining":   "half_seconds_remaining",
	"score_diff":       "score_differential",
	"offense_timeouts": "posteam_timeouts_remaining",
	"defense_timeouts": "defteam_timeouts_remaining",
	"home":             "home",
}

// Defaults for optional columns that are absent from the source table.
// Core field-position columns have no default: a table that cannot supply
// them fails loudly.
var csvColumnDefaults = map[string]float64{
	"qtr":              0,
	"time_remaining":   0,
	"score_diff":       0,
	"offense_timeouts": 3,
	"defense_timeouts": 3,
	"home":             1,
}

var csvCoreColumns = []string{"down", "ydstogo", "yardline_100"}

// LoadCSV maps a historical play-by-play table into the feature schema.
// When the table has no ep_next_score or win columns, targets are derived
// from the ground-truth formula and a seeded logistic draw, matching the
// synthetic generator.
func LoadCSV(path string, seed int64) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read history csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("history csv %s has no data rows", path)
	}

	header := map[string]int{}
	for i, name := range records[0] {
		header[name] = i
	}

	// Resolve each schema column to a source index, or to its default.
	colIndex := map[string]int{}
	for out, src := range csvColumnSources {
		if idx, ok := header[src]; ok {
			colIndex[out] = idx
		} else if idx, ok := header[out]; ok {
			colIndex[out] = idx
		} else if _, hasDefault := csvColumnDefaults[out]; !hasDefault {
			colIndex[out] = -1
		}
	}
	for _, core := range csvCoreColumns {
		if idx, mapped := colIndex[core]; !mapped || idx < 0 {
			return nil, fmt.Errorf("history csv %s: cannot map required column %q", path, core)
		}
	}

	epTargetIdx, hasEPTarget := header["ep_next_score"]
	winIdx, hasWin := header["win"]

	rng := rand.New(rand.NewSource(seed))
	rows := records[1:]

	ds := &Dataset{
		EPFeatures: make([][]float64, 0, len(rows)),
		WPFeatures: make([][]float64, 0, len(rows)),
		EPTarget:   make([]float64, 0, len(rows)),
		WinLabel:   make([]float64, 0, len(rows)),
	}

	value := func(row []string, col string) (float64, error) {
		idx, ok := colIndex[col]
		if !ok || idx < 0 {
			return csvColumnDefaults[col], nil
		}
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", col, err)
		}
		return v, nil
	}

	for rowNum, row := range rows {
		cols := map[string]float64{}
		for out := range csvColumnSources {
			v, err := value(row, out)
			if err != nil {
				return nil, fmt.Errorf("history csv %s row %d: %w", path, rowNum+2, err)
			}
			cols[out] = v
		}

		epTarget := 0.0
		if hasEPTarget {
			v, err := strconv.ParseFloat(row[epTargetIdx], 64)
			if err != nil {
				return nil, fmt.Errorf("history csv %s row %d: column ep_next_score: %w", path, rowNum+2, err)
			}
			epTarget = v
		} else {
			epTarget = groundTruthEP(
				cols["down"], cols["ydstogo"], cols["yardline_100"],
				cols["time_remaining"], cols["score_diff"], cols["home"],
			)
		}

		win := 0.0
		if hasWin {
			v, err := strconv.ParseFloat(row[winIdx], 64)
			if err != nil {
				return nil, fmt.Errorf("history csv %s row %d: column win: %w", path, rowNum+2, err)
			}
			win = v
		} else {
			linWP := 0.15*epTarget +
				0.002*cols["time_remaining"] +
				0.06*cols["score_diff"] +
				0.05*cols["home"]
			if rng.Float64() < models.Sigmoid(linWP) {
				win = 1.0
			}
		}

		ep := []float64{
			cols["down"], cols["ydstogo"], cols["yardline_100"], cols["qtr"],
			cols["time_remaining"], cols["score_diff"],
			cols["offense_timeouts"], cols["defense_timeouts"], cols["home"],
		}
		wp := append(append([]float64{}, ep...), 1.0, 0.0, 0.0)

		ds.EPFeatures = append(ds.EPFeatures, ep)
		ds.WPFeatures = append(ds.WPFeatures, wp)
		ds.EPTarget = append(ds.EPTarget, epTarget)
		ds.WinLabel = append(ds.WinLabel, win)
	}

	return ds, nil
}
