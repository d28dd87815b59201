package decision

import (
	"math"
	"testing"

	"fourthandshort/domain"
)

func TestYardlineForPossessor(t *testing.T) {
	if got := yardlineForPossessor(45, true); got != 45 {
		t.Errorf("offense view unchanged: got %v, want 45", got)
	}
	if got := yardlineForPossessor(45, false); got != 55 {
		t.Errorf("defense view flipped: got %v, want 55", got)
	}
	if got := yardlineForPossessor(1, false); got != 99 {
		t.Errorf("defense view at the 1: got %v, want 99", got)
	}
}

func TestEPFeatures_OrderAndPossession(t *testing.T) {
	q := domain.SituationQuery{
		Down:             4,
		YardsToGo:        2,
		YardlineFromGoal: 45,
		SecondsRemaining: 420,
		Quarter:          4,
		ScoreDiff:        -3,
		OffenseTimeouts:  3,
		DefenseTimeouts:  2,
		Home:             true,
	}

	x := epFeatures(q, 45, true)
	if len(x) != epFeatureDim {
		t.Fatalf("len = %d, want %d", len(x), epFeatureDim)
	}
	want := []float64{4, 2, 45, 4, 420, -3, 3, 2, 1}
	for i := range want {
		if x[i] != want[i] {
			t.Errorf("feature[%d] = %v, want %v", i, x[i], want[i])
		}
	}

	// Flipping possession only changes the yardline slot.
	flipped := epFeatures(q, 45, false)
	if flipped[2] != 55 {
		t.Errorf("flipped yardline = %v, want 55", flipped[2])
	}
	for i := range flipped {
		if i == 2 {
			continue
		}
		if flipped[i] != x[i] {
			t.Errorf("feature[%d] changed on possession flip: %v != %v", i, flipped[i], x[i])
		}
	}
}

func TestWPFeatures_BlendsEPIntoScoreSlot(t *testing.T) {
	q := domain.SituationQuery{
		Down:             4,
		YardsToGo:        2,
		YardlineFromGoal: 45,
		SecondsRemaining: 420,
		Quarter:          4,
		ScoreDiff:        -3,
		OffenseTimeouts:  3,
		DefenseTimeouts:  2,
		Home:             true,
		TeamStrengthOff:  0.4,
		TeamStrengthDef:  -0.1,
	}

	epValue := 2.5
	x := wpFeatures(q, epValue, true)
	if len(x) != wpFeatureDim {
		t.Fatalf("len = %d, want %d", len(x), wpFeatureDim)
	}

	wantScoreSlot := -3 + epBlendWeight*epValue
	if math.Abs(x[5]-wantScoreSlot) > 1e-12 {
		t.Errorf("score slot = %v, want %v", x[5], wantScoreSlot)
	}
	if x[9] != 1 {
		t.Errorf("possession slot = %v, want 1", x[9])
	}
	if x[10] != 0.4 || x[11] != -0.1 {
		t.Errorf("strength slots = %v, %v, want 0.4, -0.1", x[10], x[11])
	}

	// WP features keep the yardline in offense view regardless of the
	// hypothetical possessor.
	flipped := wpFeatures(q, epValue, false)
	if flipped[2] != 45 {
		t.Errorf("yardline slot = %v, want 45", flipped[2])
	}
	if flipped[9] != 0 {
		t.Errorf("possession slot = %v, want 0", flipped[9])
	}
}
