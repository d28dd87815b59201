package decision

import (
	"math"

	"fourthandshort/business/models"
	"fourthandshort/domain"
)

// Regressor predicts expected points from the 9 EP features.
type Regressor interface {
	Predict(x []float64) float64
}

// Classifier returns a calibrated win probability from the 12 WP features.
type Classifier interface {
	PredictProba(x []float64) float64
}

// Heuristic business rules of the simulator. These are fixed constants,
// not learned; tune them here without touching the control flow.
const (
	// 4th-down conversion probability by distance bucket
	shortConversionProb = 0.65 // to-go <= 2
	midConversionProb   = 0.50 // to-go <= 4
	longConversionProb  = 0.30

	// yards gained on a successful conversion: min(maxConversionGain, togo+1)
	maxConversionGain = 6.0

	// typical net punt distance
	puntNetYards = 38.0

	// field goal make probability: base - slope per yard beyond the
	// automatic distance, clamped to [min, max]
	fgBaseMakeProb      = 0.95
	fgMakeProbSlope     = 0.01
	fgAutomaticDistance = 25.0
	fgMinMakeProb       = 0.05
	fgMaxMakeProb       = 0.98
	fgSpotOffset        = 118.0 // yardline-to-posts conversion
	fgMissSpotPenalty   = 7.0   // miss hands the ball over 7 yards back
	fgMadePoints        = 3.0
	kickoffYardlineOff  = 75.0 // receiving team starts at its own 25

	// EP -> WP blending
	epBlendWeight         = 0.2
	wpModelWeight         = 0.7
	wpPriorWeight         = 0.3
	scoreDiffSigmoidScale = 0.18
	possessionWPShift     = 0.06

	minWinProbability = 0.01
	maxWinProbability = 0.99
)

// SimulateActions evaluates GO, PUNT and FG for the given situation. It is
// fully deterministic: same models and query always produce the same
// outcomes.
func SimulateActions(ep Regressor, wp Classifier, q domain.SituationQuery) map[domain.Action]domain.ActionOutcome {
	yardline := float64(q.YardlineFromGoal)
	togo := float64(q.YardsToGo)
	if togo <= 0 {
		togo = 1
	}

	// GO: convert with pConv; success keeps the ball a few yards further
	// downfield, failure is a turnover on the same spot.
	pConv := conversionProbability(togo)
	successYardline := math.Min(99.0, yardline+math.Min(maxConversionGain, togo+1.0))
	epSuccess := predictEP(ep, q, successYardline, true)
	epFail := predictEP(ep, q, yardline, false)
	epGo := pConv*epSuccess + (1-pConv)*epFail

	// PUNT: fixed net distance, floored at the 1, possession flips.
	puntYardline := math.Max(1.0, yardline-puntNetYards)
	epPunt := predictEP(ep, q, puntYardline, false)

	// FG: make banks 3 plus the kickoff state, miss hands the ball over
	// short of the original spot.
	pMake := fgMakeProbability(yardline)
	epIfMake := fgMadePoints + predictEP(ep, q, kickoffYardlineOff, false)
	missYardline := math.Max(1.0, yardline-fgMissSpotPenalty)
	epIfMiss := predictEP(ep, q, missYardline, false)
	epFG := pMake*epIfMake + (1-pMake)*epIfMiss

	return map[domain.Action]domain.ActionOutcome{
		domain.ActionGo:   {Action: domain.ActionGo, EP: epGo, WP: epToWP(wp, q, epGo, true)},
		domain.ActionPunt: {Action: domain.ActionPunt, EP: epPunt, WP: epToWP(wp, q, epPunt, false)},
		domain.ActionFG:   {Action: domain.ActionFG, EP: epFG, WP: epToWP(wp, q, epFG, false)},
	}
}

func conversionProbability(togo float64) float64 {
	switch {
	case togo <= 2:
		return shortConversionProb
	case togo <= 4:
		return midConversionProb
	default:
		return longConversionProb
	}
}

func fgMakeProbability(yardlineOffenseView float64) float64 {
	distToPosts := fgSpotOffset - yardlineOffenseView
	p := fgBaseMakeProb - fgMakeProbSlope*math.Max(0, distToPosts-fgAutomaticDistance)
	return clamp(p, fgMinMakeProb, fgMaxMakeProb)
}

func predictEP(ep Regressor, q domain.SituationQuery, yardlineOffenseView float64, offenseHasBall bool) float64 {
	return ep.Predict(epFeatures(q, yardlineOffenseView, offenseHasBall))
}

// epToWP queries the calibrated classifier on the original situation with
// the computed EP folded into the score slot, then blends in a
// deterministic sanity prior. The prior is a deliberate guard-rail: it
// keeps the learned classifier from producing pathological probabilities
// when extrapolating outside its training distribution.
func epToWP(wp Classifier, q domain.SituationQuery, epValue float64, offenseHasBall bool) float64 {
	prob := wp.PredictProba(wpFeatures(q, epValue, offenseHasBall))

	bias := models.Sigmoid(scoreDiffSigmoidScale * float64(q.ScoreDiff))
	posAdj := possessionWPShift
	if !offenseHasBall {
		posAdj = -possessionWPShift
	}

	blended := wpModelWeight*prob + wpPriorWeight*(0.5*bias+posAdj+0.5)
	return clamp(blended, minWinProbability, maxWinProbability)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
