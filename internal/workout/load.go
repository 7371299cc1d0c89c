package workout

import (
	"fmt"
	"math"

	"github.com/claude/workoutsync/internal/units"
)

// npWindow is the rolling-average window of the normalized power
// calculation, in samples (seconds).
const npWindow = 30

// MaxLoadSeconds caps the active time a workout may contribute to the
// power trace.
const MaxLoadSeconds = 7 * 24 * 60 * 60

// Load holds the training-load metrics of a power-based workout.
type Load struct {
	FTP                 float64 `json:"ftp"`
	Seconds             int     `json:"seconds"`
	NormalizedPower     float64 `json:"normalized_power"`
	IntensityFactor     float64 `json:"intensity_factor"`
	TrainingStressScore float64 `json:"training_stress_score"`
}

// Summary formats the metrics for a workout description.
func (l Load) Summary() string {
	return fmt.Sprintf("FTP %d, TSS %d, NP %d, IF %.2f",
		int(math.Round(l.FTP)),
		int(math.Round(l.TrainingStressScore)),
		int(math.Round(l.NormalizedPower)),
		l.IntensityFactor)
}

// ComputeLoad estimates training load from the leaves of t, ignoring
// grouping. Each leaf with both power and duration contributes one
// sample per second at its point-estimate wattage; other leaves are
// skipped. More than MaxLoadSeconds of active time is a ParseError.
func ComputeLoad(t Tree, ftp float64) (Load, error) {
	var trace []float64
	for _, s := range t.Flatten() {
		if s.Power == "" || s.Duration == "" {
			continue
		}
		p, err := units.ParsePower(s.Power)
		if err != nil {
			return Load{}, err
		}
		secs, err := units.Seconds(s.Duration)
		if err != nil {
			return Load{}, err
		}
		if secs > MaxLoadSeconds-len(trace) {
			return Load{}, &units.ParseError{
				Kind:   "duration",
				Input:  s.Duration,
				Reason: fmt.Sprintf("active time exceeds %d seconds", MaxLoadSeconds),
			}
		}
		w := float64(p.ToWatts(ftp, 0))
		for range secs {
			trace = append(trace, w)
		}
	}
	return LoadFromTrace(trace, ftp), nil
}

// LoadFromTrace computes load metrics from a per-second power trace.
// An empty trace or a zero reference yields zero metrics.
func LoadFromTrace(trace []float64, ftp float64) Load {
	l := Load{FTP: ftp, Seconds: len(trace)}
	l.NormalizedPower = NormalizedPower(trace)
	if ftp > 0 {
		l.IntensityFactor = l.NormalizedPower / ftp
		l.TrainingStressScore = float64(l.Seconds) * l.NormalizedPower * l.IntensityFactor / (ftp * 3600) * 100
	}
	return l
}

// NormalizedPower is the fourth root of the mean fourth power of the
// 30-sample trailing average. The first samples average over the
// samples available so far.
func NormalizedPower(trace []float64) float64 {
	if len(trace) == 0 {
		return 0
	}
	var sum, total float64
	for i, w := range trace {
		sum += w
		n := i + 1
		if i >= npWindow {
			sum -= trace[i-npWindow]
			n = npWindow
		}
		total += math.Pow(sum/float64(n), 4)
	}
	return math.Pow(total/float64(len(trace)), 0.25)
}
