// Package report assembles diagnostic reports: aggregate statistics over
// an event snapshot plus the surrounding metadata and system information.
package report

import (
	"github.com/baikal/appdiag/internal/event"
	"github.com/baikal/appdiag/internal/model"
)

// Summarize computes per-kind event counts and resource statistics in a
// single pass over events. When the snapshot holds no resource samples,
// ResourceStats is nil rather than zero-filled. Averages are computed once
// after the pass, not incrementally.
func Summarize(events []event.Event) model.ReportSummary {
	counts := make(map[string]int, 6)

	var (
		samples                int
		cpuMin, cpuMax, cpuSum float64
		ramMin, ramMax, ramSum float64
	)

	for _, ev := range events {
		if ev.Body == nil {
			continue
		}
		counts[string(ev.Body.Kind())]++

		rs, ok := ev.Body.(event.ResourceSnapshot)
		if !ok {
			continue
		}
		ramMB := float64(rs.RAMBytes) / (1 << 20)
		if samples == 0 {
			cpuMin, cpuMax = rs.CPUPercent, rs.CPUPercent
			ramMin, ramMax = ramMB, ramMB
		} else {
			if rs.CPUPercent < cpuMin {
				cpuMin = rs.CPUPercent
			}
			if rs.CPUPercent > cpuMax {
				cpuMax = rs.CPUPercent
			}
			if ramMB < ramMin {
				ramMin = ramMB
			}
			if ramMB > ramMax {
				ramMax = ramMB
			}
		}
		cpuSum += rs.CPUPercent
		ramSum += ramMB
		samples++
	}

	summary := model.ReportSummary{EventCounts: counts}
	if samples > 0 {
		n := float64(samples)
		summary.ResourceStats = &model.ResourceStats{
			CPUMin:   cpuMin,
			CPUMax:   cpuMax,
			CPUAvg:   cpuSum / n,
			RAMMinMB: ramMin,
			RAMMaxMB: ramMax,
			RAMAvgMB: ramSum / n,
		}
	}
	return summary
}
