package domain

// Action is a candidate 4th-down call. Only GO, PUNT and FG are simulated
// and eligible as the top recommendation; KNEEL and QB_SNEAK exist for
// completeness of the wire enum.
type Action string

const (
	ActionGo      Action = "GO"
	ActionPunt    Action = "PUNT"
	ActionFG      Action = "FG"
	ActionKneel   Action = "KNEEL"
	ActionQBSneak Action = "QB_SNEAK"
)

// SituationQuery is the immutable input to one recommendation.
// YardlineFromGoal is the distance to the opponent goal line (1-99),
// expressed from the offense's point of view.
type SituationQuery struct {
	Down             int      `json:"down" validate:"min=1,max=4"`
	YardsToGo        int      `json:"ydstogo" validate:"min=1,max=100"`
	YardlineFromGoal int      `json:"yardline_100" validate:"min=1,max=99"`
	SecondsRemaining int      `json:"time_remaining" validate:"min=0"`
	Quarter          int      `json:"qtr" validate:"min=1,max=5"`
	ScoreDiff        int      `json:"score_diff"`
	OffenseTimeouts  int      `json:"offense_timeouts" validate:"min=0,max=3"`
	DefenseTimeouts  int      `json:"defense_timeouts" validate:"min=0,max=3"`
	Home             bool     `json:"home"`
	WeatherTempF     *float64 `json:"weather_temp,omitempty"`
	WeatherWindMPH   *float64 `json:"weather_wind,omitempty"`
	WeatherRain      *bool    `json:"weather_rain,omitempty"`
	Possession       string   `json:"possession,omitempty" validate:"omitempty,oneof=offense defense"`
	TeamStrengthOff  float64  `json:"team_strength_off,omitempty"`
	TeamStrengthDef  float64  `json:"team_strength_def,omitempty"`
}

// ActionOutcome pairs one candidate action with its simulated value.
type ActionOutcome struct {
	Action Action  `json:"action"`
	WP     float64 `json:"wp"`
	EP     float64 `json:"ep"`
}

type Uncertainty struct {
	Std    float64 `json:"std"`
	Method string  `json:"method"`
}

// RecommendationResult is derived entirely from a SituationQuery and a
// model version; immutable once produced and cached by the canonical
// value of its input.
type RecommendationResult struct {
	Recommendation Action          `json:"recommendation"`
	DeltaWP        float64         `json:"delta_wp"`
	DeltaEP        float64         `json:"delta_ep"`
	Alternatives   []ActionOutcome `json:"alternatives"`
	Rationale      []string        `json:"rationale"`
	Uncertainty    Uncertainty     `json:"uncertainty"`
	ModelVersion   string          `json:"version"`
}
