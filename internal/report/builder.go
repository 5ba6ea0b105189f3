package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baikal/appdiag/internal/anonymize"
	"github.com/baikal/appdiag/internal/collector"
	"github.com/baikal/appdiag/internal/model"
	"github.com/baikal/appdiag/internal/sysinfo"
)

// Builder drains a collector and assembles a complete DiagnosticReport.
type Builder struct {
	Collector  *collector.Collector
	Anonymizer *anonymize.Anonymizer
	SysInfo    sysinfo.Provider
	Version    string
}

// Build produces a report from the collector's current contents: pending
// events are drained into the retained buffer, summary statistics are
// computed from the raw snapshot, and the exported event sequence is
// anonymized. Metadata and system information are queried fresh on every
// call. Given identical buffer contents and system state, the output is
// identical apart from the report ID and generation time.
//
// Statistics come from the raw, pre-anonymization snapshot; since the
// anonymizer never touches resource numerics, the numbers would be the
// same either way.
func (b *Builder) Build(ctx context.Context) (*model.DiagnosticReport, error) {
	b.Collector.Drain()
	raw := b.Collector.Snapshot()

	summary := Summarize(raw)

	events := raw
	if b.Anonymizer != nil {
		events = b.Anonymizer.Anonymize(raw)
	}

	info, err := b.SysInfo.Query(ctx)
	if err != nil {
		return nil, fmt.Errorf("query system info: %w", err)
	}

	return &model.DiagnosticReport{
		Metadata: model.Metadata{
			ID:          uuid.NewString(),
			GeneratedAt: time.Now(),
			Version:     b.Version,
			Duration:    b.Collector.SessionDuration().Round(time.Millisecond).String(),
			EventCount:  len(events),
		},
		SystemInfo: info,
		Events:     events,
		Summary:    &summary,
	}, nil
}
