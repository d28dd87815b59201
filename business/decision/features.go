package decision

import "fourthandshort/domain"

const (
	epFeatureDim = 9
	wpFeatureDim = 12
)

// yardlineForPossessor converts a yardline expressed in offense view
// (distance to the opponent goal) into the view of whichever side holds
// the ball after the hypothetical play. Every possession flip in the
// simulator must go through this function; the EP model only understands
// yardlines from the possessor's perspective.
func yardlineForPossessor(yardlineOffenseView float64, offenseHasBall bool) float64 {
	if offenseHasBall {
		return yardlineOffenseView
	}
	return 100.0 - yardlineOffenseView
}

// epFeatures builds the fixed-order 9-feature vector consumed by the EP
// model. The yardline argument is always offense view; the possession
// flag decides whose perspective the model sees.
func epFeatures(q domain.SituationQuery, yardlineOffenseView float64, offenseHasBall bool) []float64 {
	home := 0.0
	if q.Home {
		home = 1.0
	}
	return []float64{
		float64(q.Down),
		float64(q.YardsToGo),
		yardlineForPossessor(yardlineOffenseView, offenseHasBall),
		float64(q.Quarter),
		float64(q.SecondsRemaining),
		float64(q.ScoreDiff),
		float64(q.OffenseTimeouts),
		float64(q.DefenseTimeouts),
		home,
	}
}

// wpFeatures builds the 12-feature WP vector: the EP features of the
// original situation plus possession and team strengths. The computed EP
// value is blended into the score-differential slot as a light signal
// rather than replacing it.
func wpFeatures(q domain.SituationQuery, epValue float64, offenseHasBall bool) []float64 {
	home := 0.0
	if q.Home {
		home = 1.0
	}
	possession := 0.0
	if offenseHasBall {
		possession = 1.0
	}
	return []float64{
		float64(q.Down),
		float64(q.YardsToGo),
		float64(q.YardlineFromGoal),
		float64(q.Quarter),
		float64(q.SecondsRemaining),
		float64(q.ScoreDiff) + epBlendWeight*epValue,
		float64(q.OffenseTimeouts),
		float64(q.DefenseTimeouts),
		home,
		possession,
		q.TeamStrengthOff,
		q.TeamStrengthDef,
	}
}
