// Package sampler feeds periodic CPU/RAM snapshots into the collector.
package sampler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/baikal/appdiag/internal/collector"
)

// DefaultInterval is used when no interval is configured.
const DefaultInterval = 5 * time.Second

// Probe reads one CPU/RAM sample. Implementations are called from a single
// goroutine, one call per tick.
type Probe interface {
	Sample() (cpuPercent float64, ramBytes uint64, err error)
}

// ProcessProbe samples the viewer's own process via gopsutil. CPU percent
// is measured since the previous call.
type ProcessProbe struct {
	proc *process.Process
}

// NewProcessProbe opens a handle to the current process.
func NewProcessProbe() (*ProcessProbe, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open process handle: %w", err)
	}
	return &ProcessProbe{proc: p}, nil
}

func (p *ProcessProbe) Sample() (float64, uint64, error) {
	cpu, err := p.proc.Percent(0)
	if err != nil {
		return 0, 0, fmt.Errorf("cpu percent: %w", err)
	}
	mi, err := p.proc.MemoryInfo()
	if err != nil {
		return 0, 0, fmt.Errorf("memory info: %w", err)
	}
	return cpu, mi.RSS, nil
}

// Sampler logs one ResourceSnapshot per interval through a collector
// handle. It is a plain producer: samples flow through the same
// non-blocking channel as every other event.
type Sampler struct {
	handle   collector.Handle
	probe    Probe
	interval time.Duration
}

// New creates a Sampler. Non-positive intervals fall back to
// DefaultInterval.
func New(h collector.Handle, probe Probe, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sampler{handle: h, probe: probe, interval: interval}
}

// Run blocks, sampling on every tick until ctx is cancelled, then returns
// ctx.Err(). A probe failure skips the tick; sampling continues.
func (s *Sampler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			cpu, ram, err := s.probe.Sample()
			if err != nil {
				continue
			}
			s.handle.LogResourceSnapshot(cpu, ram)
		}
	}
}
