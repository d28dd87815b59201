package decision

import (
	"math"
	"reflect"
	"testing"

	"fourthandshort/domain"
)

// regressorFunc and classifierFunc adapt closures to the model interfaces
// so each test controls the value surface directly.
type regressorFunc func(x []float64) float64

func (f regressorFunc) Predict(x []float64) float64 { return f(x) }

type classifierFunc func(x []float64) float64

func (f classifierFunc) PredictProba(x []float64) float64 { return f(x) }

// fieldPositionEP rewards field position and punishes distance, the shape
// a trained EP model converges to on the synthetic history.
var fieldPositionEP = regressorFunc(func(x []float64) float64 {
	return 0.08*x[2] - 0.1*x[1]
})

var neutralWP = classifierFunc(func(x []float64) float64 { return 0.5 })

func baseSituation() domain.SituationQuery {
	return domain.SituationQuery{
		Down:             4,
		YardsToGo:        2,
		YardlineFromGoal: 45,
		SecondsRemaining: 420,
		Quarter:          4,
		ScoreDiff:        -3,
		OffenseTimeouts:  3,
		DefenseTimeouts:  3,
		Home:             true,
	}
}

func TestSimulateActions_ExactActionSet(t *testing.T) {
	outcomes := SimulateActions(fieldPositionEP, neutralWP, baseSituation())

	if len(outcomes) != 3 {
		t.Fatalf("got %d actions, want 3", len(outcomes))
	}
	for _, action := range []domain.Action{domain.ActionGo, domain.ActionPunt, domain.ActionFG} {
		outcome, ok := outcomes[action]
		if !ok {
			t.Fatalf("missing action %s", action)
		}
		if outcome.Action != action {
			t.Errorf("outcome for %s labeled %s", action, outcome.Action)
		}
	}
}

func TestSimulateActions_Deterministic(t *testing.T) {
	q := baseSituation()
	first := SimulateActions(fieldPositionEP, neutralWP, q)
	second := SimulateActions(fieldPositionEP, neutralWP, q)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated simulation differs:\n%v\n%v", first, second)
	}
}

func TestSimulateActions_WPWithinBounds(t *testing.T) {
	extremes := []classifierFunc{
		classifierFunc(func(x []float64) float64 { return 5.0 }),
		classifierFunc(func(x []float64) float64 { return -5.0 }),
	}
	for _, wp := range extremes {
		for _, outcome := range SimulateActions(fieldPositionEP, wp, baseSituation()) {
			if outcome.WP < minWinProbability || outcome.WP > maxWinProbability {
				t.Errorf("%s WP = %v outside [%v, %v]",
					outcome.Action, outcome.WP, minWinProbability, maxWinProbability)
			}
		}
	}
}

// Shorter to-go must never make going for it look worse: conversion
// probability rises and the distance penalty shrinks.
func TestSimulateActions_GoEPMonotoneInToGo(t *testing.T) {
	prev := math.Inf(-1)
	for togo := 8; togo >= 1; togo-- {
		q := baseSituation()
		q.YardsToGo = togo
		epGo := SimulateActions(fieldPositionEP, neutralWP, q)[domain.ActionGo].EP
		if epGo < prev {
			t.Fatalf("EP(GO) decreased from %.4f to %.4f at ydstogo=%d", prev, epGo, togo)
		}
		prev = epGo
	}
}

func TestSimulateActions_PossessionDrivesWP(t *testing.T) {
	// A classifier keyed purely on the possession slot: only GO keeps the
	// ball, so GO must carry the top WP.
	possessionWP := classifierFunc(func(x []float64) float64 {
		if x[9] == 1 {
			return 0.8
		}
		return 0.3
	})

	outcomes := SimulateActions(fieldPositionEP, possessionWP, baseSituation())
	goWP := outcomes[domain.ActionGo].WP
	if goWP <= outcomes[domain.ActionPunt].WP || goWP <= outcomes[domain.ActionFG].WP {
		t.Errorf("GO WP %.4f not highest: punt %.4f, fg %.4f",
			goWP, outcomes[domain.ActionPunt].WP, outcomes[domain.ActionFG].WP)
	}
}

func TestConversionProbability_Buckets(t *testing.T) {
	cases := []struct {
		togo float64
		want float64
	}{
		{1, shortConversionProb},
		{2, shortConversionProb},
		{3, midConversionProb},
		{4, midConversionProb},
		{5, longConversionProb},
		{15, longConversionProb},
	}
	for _, c := range cases {
		if got := conversionProbability(c.togo); got != c.want {
			t.Errorf("conversionProbability(%v) = %v, want %v", c.togo, got, c.want)
		}
	}
}

func TestFGMakeProbability(t *testing.T) {
	// Chip shot: 118-93 = 25 yards, no penalty.
	if got := fgMakeProbability(93); math.Abs(got-fgBaseMakeProb) > 1e-12 {
		t.Errorf("fgMakeProbability(93) = %v, want %v", got, fgBaseMakeProb)
	}

	// Midfield attempt: 73 yards to the posts, 48 beyond automatic.
	want := fgBaseMakeProb - fgMakeProbSlope*48
	if got := fgMakeProbability(45); math.Abs(got-want) > 1e-12 {
		t.Errorf("fgMakeProbability(45) = %v, want %v", got, want)
	}

	// Absurd distance clamps at the floor instead of going negative.
	if got := fgMakeProbability(1); got != fgMinMakeProb {
		t.Errorf("fgMakeProbability(1) = %v, want %v", got, fgMinMakeProb)
	}

	// Probabilities stay in range across the whole field.
	for y := 1.0; y <= 99; y++ {
		p := fgMakeProbability(y)
		if p < fgMinMakeProb || p > fgMaxMakeProb {
			t.Fatalf("fgMakeProbability(%v) = %v outside [%v, %v]", y, p, fgMinMakeProb, fgMaxMakeProb)
		}
	}
}

func TestSimulateActions_ZeroToGoFloored(t *testing.T) {
	q := baseSituation()
	q.YardsToGo = 0 // validation rejects this upstream; simulator still floors

	outcomes := SimulateActions(fieldPositionEP, neutralWP, q)
	if len(outcomes) != 3 {
		t.Fatalf("got %d actions, want 3", len(outcomes))
	}
	for _, outcome := range outcomes {
		if math.IsNaN(outcome.EP) || math.IsNaN(outcome.WP) {
			t.Errorf("%s produced NaN", outcome.Action)
		}
	}
}
