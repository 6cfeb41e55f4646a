package signal

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

const (
	forecastStepMinutes    = 5
	forecastHorizonMinutes = 30
	liveWeight             = 0.6
	historyWeight          = 0.4
	maxNoise               = 3
)

// ForecastPoint is the predicted congestion per direction at one horizon.
// It encodes flat: {"time":"5m","north":9,...,"maxCongestionDirection":"north"}.
type ForecastPoint struct {
	Time                   string
	Predicted              map[string]int
	MaxCongestionDirection string
}

func (p ForecastPoint) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(p.Predicted)+2)
	for d, v := range p.Predicted {
		flat[d] = v
	}
	flat["time"] = p.Time
	flat["maxCongestionDirection"] = p.MaxCongestionDirection
	return json.Marshal(flat)
}

// DefaultHistory is the historical pattern per direction in 5 minute buckets.
func DefaultHistory() map[string][]int {
	return map[string][]int{
		"north": {8, 10, 12, 14, 15, 16},
		"south": {6, 9, 11, 13, 14, 15},
		"east":  {4, 5, 7, 8, 9, 10},
		"west":  {3, 4, 6, 7, 8, 9},
	}
}

// Forecast blends live counts with history for the next half hour.
// Directions come from the history table; missing live values count as zero.
func Forecast(live map[string]int, history map[string][]int, src RandSource) ([]ForecastPoint, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("no historical data: %w", ErrInvalidInput)
	}
	directions := make([]string, 0, len(history))
	for d := range history {
		directions = append(directions, d)
	}
	sort.Strings(directions)

	var points []ForecastPoint
	for minute := forecastStepMinutes; minute <= forecastHorizonMinutes; minute += forecastStepMinutes {
		bucket := minute/forecastStepMinutes - 1
		predicted := make(map[string]int, len(directions))
		for _, d := range directions {
			hist := 0
			if bucket < len(history[d]) {
				hist = history[d][bucket]
			}
			noise := src.Intn(maxNoise)
			predicted[d] = int(math.Floor(float64(live[d])*liveWeight + float64(hist)*historyWeight + float64(noise)))
		}

		ranked, err := Rank(predicted, nil)
		if err != nil {
			return nil, err
		}
		points = append(points, ForecastPoint{
			Time:                   fmt.Sprintf("%dm", minute),
			Predicted:              predicted,
			MaxCongestionDirection: ranked[0].Direction,
		})
	}
	return points, nil
}
