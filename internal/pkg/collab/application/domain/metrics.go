package collab

import "time"

// PerformanceSample is one timestamped measurement of the realtime plane.
type PerformanceSample struct {
	ActiveConnections int       `json:"active_connections"`
	MessageRate       float64   `json:"message_rate"`
	LatencyP50        float64   `json:"latency_p50_ms"`
	LatencyP95        float64   `json:"latency_p95_ms"`
	LatencyP99        float64   `json:"latency_p99_ms"`
	ErrorCount        int       `json:"error_count"`
	RecordedAt        time.Time `json:"recorded_at"`
}

// PerformanceAlert flags one detected degradation.
type PerformanceAlert struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// PerformanceReport is the outcome of a sliding-window analysis pass.
type PerformanceReport struct {
	Degraded    bool               `json:"degraded"`
	AvgP95      float64            `json:"avg_p95_ms"`
	SampleCount int                `json:"sample_count"`
	WindowSize  int                `json:"window_size"`
	Alerts      []PerformanceAlert `json:"alerts"`
	GeneratedAt time.Time          `json:"generated_at"`
}

const (
	// AnalysisFetchDepth is how many recent samples the analysis pulls.
	AnalysisFetchDepth = 10
	// AnalysisWindow is how many of the most recent samples are averaged.
	AnalysisWindow = 5
	// DefaultLatencyThresholdMS flips the degraded flag when the rolling
	// average p95 exceeds it.
	DefaultLatencyThresholdMS = 100.0
)

// AnalyzeSamples runs the sliding-window check over samples ordered newest
// first: the p95 of the most recent AnalysisWindow samples is averaged and
// compared against the threshold.
func AnalyzeSamples(samples []PerformanceSample, thresholdMS float64, now time.Time) PerformanceReport {
	if thresholdMS <= 0 {
		thresholdMS = DefaultLatencyThresholdMS
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	window := samples
	if len(window) > AnalysisWindow {
		window = window[:AnalysisWindow]
	}
	report := PerformanceReport{
		SampleCount: len(samples),
		WindowSize:  len(window),
		GeneratedAt: now,
	}
	if len(window) == 0 {
		return report
	}
	var sum float64
	for _, s := range window {
		sum += s.LatencyP95
	}
	report.AvgP95 = sum / float64(len(window))
	if report.AvgP95 > thresholdMS {
		report.Degraded = true
		report.Alerts = append(report.Alerts, PerformanceAlert{
			Kind:     "latency_spike",
			Severity: "high",
			Message:  AggregateAlertMessage(report.AvgP95, thresholdMS),
		})
	}
	return report
}

// AggregateAlertMessage renders the alert text for a latency spike.
func AggregateAlertMessage(avgP95, thresholdMS float64) string {
	return "rolling p95 latency " + formatMillis(avgP95) + " exceeds " + formatMillis(thresholdMS)
}

func formatMillis(v float64) string {
	d := time.Duration(v * float64(time.Millisecond))
	return d.Round(time.Microsecond).String()
}
