// Package sysinfo queries host facts for report metadata.
package sysinfo

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/baikal/appdiag/internal/model"
)

// Provider supplies host facts. The report builder queries it exactly once
// per report build.
type Provider interface {
	Query(ctx context.Context) (model.SystemInfo, error)
}

// Host reads system information via gopsutil, falling back to runtime
// facts for anything the platform does not expose. Query never fails.
type Host struct{}

func (Host) Query(ctx context.Context) (model.SystemInfo, error) {
	info := model.SystemInfo{
		OS:       runtime.GOOS,
		CPUCores: runtime.NumCPU(),
	}
	if hi, err := host.InfoWithContext(ctx); err == nil {
		if hi.Platform != "" {
			info.OS = hi.Platform
		}
		info.OSVersion = hi.PlatformVersion
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		info.CPUCores = n
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.RAMTotal = vm.Total
	}
	return info, nil
}

// Static returns fixed system information; used by tests and by embedders
// that already know the host facts.
type Static struct {
	Info model.SystemInfo
}

func (s Static) Query(context.Context) (model.SystemInfo, error) {
	return s.Info, nil
}
