package decision

// Placeholder dashboard report. Not part of the decision algorithm; the
// shapes are what the dashboard consumes.

type ReportPoint struct {
	Sec int     `json:"sec"`
	WP  float64 `json:"wp"`
}

type ReportSummary struct {
	Team     string `json:"team"`
	Opponent string `json:"opponent"`
	Version  string `json:"version"`
}

type GameReport struct {
	GameID        string        `json:"game_id"`
	WPOverTime    []ReportPoint `json:"wp_over_time"`
	GoZoneHeatmap [][]float64   `json:"go_zone_heatmap"`
	Summary       ReportSummary `json:"summary"`
}

// GameReport builds a deterministic placeholder time-series and heatmap for
// dashboard consumption.
func (s *DecisionService) GameReport(gameID string) GameReport {
	version, err := s.effectiveVersion("")
	if err != nil {
		version = "unknown"
	}

	series := make([]ReportPoint, 0, 60)
	for i := 1; i <= 60; i++ {
		series = append(series, ReportPoint{
			Sec: i * 60,
			WP:  0.4 + 0.2*float64(i%2),
		})
	}

	heatmap := make([][]float64, 0, 81)
	for i := 1; i <= 9; i++ {
		for j := 1; j <= 9; j++ {
			heatmap = append(heatmap, []float64{
				float64(i),
				float64(j),
				float64((i*j)%10) / 10.0,
			})
		}
	}

	return GameReport{
		GameID:        gameID,
		WPOverTime:    series,
		GoZoneHeatmap: heatmap,
		Summary: ReportSummary{
			Team:     "Demo Team",
			Opponent: "Demo Opp",
			Version:  version,
		},
	}
}
