package domain

import "time"

// Metric is a single performance measurement for a player. Metrics are append-only.
type Metric struct {
	ID           int64     `db:"id" bson:"_id" json:"id"`
	PlayerID     int64     `db:"player_id" bson:"playerId" json:"playerId"`
	ExitVelocity float64   `db:"exit_velocity" bson:"exitVelocity" json:"exitVelocity"`
	CreatedAt    time.Time `db:"created_at" bson:"createdAt" json:"createdAt"`
}

// ChartPoint is one point of a player's exit velocity time series.
type ChartPoint struct {
	X string  `json:"x"` // YYYY-MM-DD
	Y float64 `json:"y"`
}

// ChartPoints converts metrics, assumed to be in ascending order, into chart points.
func ChartPoints(metrics []Metric) []ChartPoint {
	points := make([]ChartPoint, len(metrics))
	for i, m := range metrics {
		points[i] = ChartPoint{X: m.CreatedAt.Format("2006-01-02"), Y: m.ExitVelocity}
	}
	return points
}
