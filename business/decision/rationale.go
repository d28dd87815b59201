package decision

import "fourthandshort/domain"

// Rationale trigger thresholds.
const (
	rationaleShortToGo     = 3
	rationaleDeepFieldLine = 60
)

// buildRationale emits the fixed textual justifications whose literal
// numeric condition holds. Never empty.
func buildRationale(q domain.SituationQuery, action domain.Action) []string {
	var r []string
	if q.YardsToGo <= rationaleShortToGo {
		r = append(r, "To-go <= 3")
	}
	if q.YardlineFromGoal >= rationaleDeepFieldLine {
		r = append(r, "Opp red zone field position")
	}
	switch action {
	case domain.ActionGo:
		r = append(r, "Calibrated WP favors GO")
	case domain.ActionFG:
		r = append(r, "High make probability given distance")
	case domain.ActionPunt:
		r = append(r, "Field position swing favors punt")
	}
	if len(r) == 0 {
		r = []string{"Model preference"}
	}
	return r
}
