// Package system probes the host: available encoders, cores and memory.
package system

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Hardware H.264 encoders in order of preference. libx264 is the fallback.
var hardwareEncoders = []string{"h264_videotoolbox", "h264_nvenc"}

// GetBestH264Encoder asks ffmpeg which encoders it was built with and picks
// the first hardware one available.
func GetBestH264Encoder(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, name := range hardwareEncoders {
		if strings.Contains(string(out), name) {
			return name
		}
	}
	return "libx264"
}

// DefaultQuality is the quality setting used when none is configured.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 23
	}
}

// GetAudioDuration returns the length of an audio file in seconds via ffprobe.
func GetAudioDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration); err != nil {
		return 0, fmt.Errorf("parse duration of %s: %w", path, err)
	}
	return duration, nil
}

// FindLatest returns the most recently modified file in dir whose name ends
// in one of exts.
func FindLatest(dir string, exts ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time
	for _, f := range files {
		if f.IsDir() || !hasExt(f.Name(), exts) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}
	if latestFile == "" {
		return "", fmt.Errorf("no %s files in %s", strings.Join(exts, "/"), dir)
	}
	return latestFile, nil
}

func hasExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Host summarises the machine a render runs on.
type Host struct {
	LogicalCores  int
	PhysicalCores int
	TotalMemory   uint64
	FreeMemory    uint64
}

// HostReport reads core counts and memory. Fields that cannot be read are
// left at the runtime's view or zero.
func HostReport() Host {
	h := Host{LogicalCores: runtime.NumCPU()}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		h.LogicalCores = n
	}
	if n, err := cpu.Counts(false); err == nil {
		h.PhysicalCores = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		h.TotalMemory = vm.Total
		h.FreeMemory = vm.Available
	}
	return h
}

func (h Host) String() string {
	return fmt.Sprintf("%d cores (%d physical), %s free of %s",
		h.LogicalCores, h.PhysicalCores, humanize.IBytes(h.FreeMemory), humanize.IBytes(h.TotalMemory))
}

// DefaultWorkers is the render pool size for a frame of width x height: one
// worker per core, capped so that in-flight frames stay within a quarter of
// free memory.
func (h Host) DefaultWorkers(width, height int) int {
	workers := max(h.LogicalCores, 1)
	frame := uint64(width) * uint64(height) * 4
	if h.FreeMemory > 0 && frame > 0 {
		// each worker keeps roughly a frame in flight plus one queued
		budget := h.FreeMemory / 4 / (frame * 2)
		if budget < uint64(workers) {
			workers = max(int(budget), 1)
		}
	}
	return workers
}
