package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

// BenchmarkLog is the file runs with stats enabled append to.
var BenchmarkLog = "benchmark.log"

func (p *Project) report(s *Stats) {
	p.Logger.Info("performance report",
		"build", p.Config.BuildVersion,
		"total", s.TotalTime.Round(time.Millisecond),
		"render+encode", s.RenderTime.Round(time.Millisecond),
		"concat", s.ConcatTime.Round(time.Millisecond),
		"frames", humanize.Comma(int64(s.Frames)),
		"buffers", s.Allocated,
		"fps", fmt.Sprintf("%.2f", s.EffectiveFPS),
	)

	entry := fmt.Sprintf("[%s] Build: %s | Run: %s | Output: %s | Scenes: %d | Frames: %d | Total: %.2fs | Render: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		s.RunID,
		filepath.Base(s.Output),
		s.Scenes,
		s.Frames,
		s.TotalTime.Seconds(),
		s.RenderTime.Seconds(),
		s.EffectiveFPS,
	)
	f, err := os.OpenFile(BenchmarkLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		p.Logger.Warn("could not write benchmark log", "err", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(entry); err != nil {
		p.Logger.Warn("could not write benchmark log", "err", err)
	}
}
