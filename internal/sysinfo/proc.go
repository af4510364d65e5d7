// Package sysinfo samples resource usage of the monitor process itself for
// display in the dashboard status bar.
package sysinfo

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// Sample is one resource usage reading.
type Sample struct {
	CPUPercent float64
	RSSBytes   uint64
}

// ProcSampler reads CPU and memory usage for the current process.
type ProcSampler struct {
	proc *process.Process
}

// NewProcSampler creates a sampler for this process.
func NewProcSampler() (*ProcSampler, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &ProcSampler{proc: p}, nil
}

// Sample returns the current reading. CPU percent is computed against the
// interval since the previous call, so the first reading is usually zero.
func (s *ProcSampler) Sample() (Sample, error) {
	cpu, err := s.proc.Percent(0)
	if err != nil {
		return Sample{}, err
	}
	mem, err := s.proc.MemoryInfo()
	if err != nil {
		return Sample{}, err
	}
	return Sample{CPUPercent: cpu, RSSBytes: mem.RSS}, nil
}
