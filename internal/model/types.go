// Package model defines the exportable diagnostics report document. These
// types serialize to the JSON consumed by support tooling and AI agents.
package model

import (
	"time"

	"github.com/baikal/appdiag/internal/event"
)

// DiagnosticReport is the complete export document. It is assembled fresh
// per export request and never mutated after assembly; this core does not
// persist it beyond the single export call.
type DiagnosticReport struct {
	Metadata   Metadata       `json:"metadata"`
	SystemInfo SystemInfo     `json:"system_info"`
	Events     []event.Event  `json:"events"`
	Summary    *ReportSummary `json:"summary,omitempty"`
}

// Metadata identifies one report.
type Metadata struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Version     string    `json:"version"`
	Duration    string    `json:"duration"`
	EventCount  int       `json:"event_count"`
}

// SystemInfo describes the host at report time.
type SystemInfo struct {
	OS        string `json:"os"`
	OSVersion string `json:"os_version"`
	CPUCores  int    `json:"cpu_cores"`
	RAMTotal  uint64 `json:"ram_total"`
}

// ReportSummary aggregates a report's events. ResourceStats is nil, and
// omitted from the JSON entirely, when the report holds no resource
// samples; it is never a zero-filled record.
type ReportSummary struct {
	EventCounts   map[string]int `json:"event_counts"`
	ResourceStats *ResourceStats `json:"resource_stats,omitempty"`
}

// ResourceStats summarizes the resource samples in a report. RAM values
// are megabytes.
type ResourceStats struct {
	CPUMin   float64 `json:"cpu_min"`
	CPUMax   float64 `json:"cpu_max"`
	CPUAvg   float64 `json:"cpu_avg"`
	RAMMinMB float64 `json:"ram_min_mb"`
	RAMMaxMB float64 `json:"ram_max_mb"`
	RAMAvgMB float64 `json:"ram_avg_mb"`
}
