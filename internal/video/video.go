// Package video turns rendered frames into H.264 segments and joins them with
// ffmpeg.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ivlev/sagascape/internal/apperr"
	"github.com/ivlev/sagascape/internal/config"
)

// Segment is one encoded scene.
type Segment struct {
	Path     string
	Duration float64
}

type Encoder interface {
	// EncodeFrames streams frames in display order into a segment file.
	// release, when set, is called with every frame once it is written.
	EncodeFrames(ctx context.Context, frames <-chan *image.RGBA, path string, params config.SegmentParams, release func(*image.RGBA)) error
	Concatenate(ctx context.Context, segments []Segment, finalPath string, tmpDir string, cfg config.Config) error
}

// FFmpegEncoder drives the ffmpeg binary found on PATH.
type FFmpegEncoder struct {
	Codec   string
	Quality int
}

var _ Encoder = (*FFmpegEncoder)(nil)

func (e *FFmpegEncoder) codec() string {
	if e.Codec == "" {
		return "libx264"
	}
	return e.Codec
}

func (e *FFmpegEncoder) EncodeFrames(
	ctx context.Context,
	frames <-chan *image.RGBA,
	path string,
	params config.SegmentParams,
	release func(*image.RGBA),
) error {
	args := buildEncodeArgs(path, params, e.codec(), e.Quality)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start: %w", err)
	}

	writeErr := writeFrames(ctx, stdin, frames, params, release)
	stdin.Close()
	waitErr := cmd.Wait()

	if writeErr != nil {
		return fmt.Errorf("write frames to %s: %w", filepath.Base(path), writeErr)
	}
	if waitErr != nil {
		return ffmpegFailure(ctx, waitErr, out.String(), "ffmpeg encode %s", filepath.Base(path))
	}
	return nil
}

func writeFrames(ctx context.Context, w io.Writer, frames <-chan *image.RGBA, params config.SegmentParams, release func(*image.RGBA)) error {
	want := image.Rect(0, 0, params.Width, params.Height)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case img, ok := <-frames:
			if !ok {
				return nil
			}
			if img.Rect != want || img.Stride != params.Width*4 {
				return fmt.Errorf("frame is %v, want %v", img.Rect, want)
			}
			_, err := w.Write(img.Pix)
			if release != nil {
				release(img)
			}
			if err != nil {
				return err
			}
		}
	}
}

func buildEncodeArgs(path string, params config.SegmentParams, codec string, quality int) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
		"-t", fmt.Sprintf("%f", params.Duration),
		"-r", fmt.Sprintf("%d", params.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", codec,
	}
	args = append(args, qualityArgs(codec, quality)...)
	return append(args, path)
}

func qualityArgs(codec string, quality int) []string {
	switch codec {
	case "h264_videotoolbox":
		// bitrate in kbit/s: 75 -> 7.5 Mbit/s
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default:
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// CrossfadeDuration clamps the configured fade so that no transition is
// longer than half of the shortest segment.
func CrossfadeDuration(segments []Segment, cfg config.Config) float64 {
	if cfg.TransitionType == "" || cfg.TransitionType == "none" || len(segments) < 2 {
		return 0
	}
	fade := cfg.FadeDuration
	for _, s := range segments {
		if fade > s.Duration/2 {
			fade = s.Duration / 2
		}
	}
	return max(fade, 0)
}

func (e *FFmpegEncoder) Concatenate(ctx context.Context, segments []Segment, finalPath string, tmpDir string, cfg config.Config) error {
	if len(segments) == 0 {
		return fmt.Errorf("nothing to concatenate")
	}
	if err := os.MkdirAll(filepath.Dir(finalPath), 0o755); err != nil {
		return err
	}

	fade := CrossfadeDuration(segments, cfg)
	if fade == 0 && cfg.AudioPath == "" {
		listPath := filepath.Join(tmpDir, "inputs.txt")
		if err := writeConcatList(listPath, segments); err != nil {
			return err
		}
		cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
			"-f", "concat", "-safe", "0", "-i", listPath,
			"-c", "copy", finalPath,
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			return ffmpegFailure(ctx, err, string(out), "ffmpeg concat")
		}
		return nil
	}

	args := buildConcatArgs(segments, finalPath, fade, cfg, e.codec(), e.Quality)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return ffmpegFailure(ctx, err, string(out), "ffmpeg xfade")
	}
	return nil
}

// ffmpegFailure reports a failed ffmpeg run with the end of its output. A
// run killed by cancellation reports the context error instead.
func ffmpegFailure(ctx context.Context, err error, output, format string, args ...any) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return apperr.Wrap(apperr.CodeInternal, fmt.Errorf("%w\n%s", err, tail(output, 20)), format, args...)
}

func writeConcatList(path string, segments []Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, s := range segments {
		abs, err := filepath.Abs(s.Path)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(f, "file '%s'\n", abs); err != nil {
			return err
		}
	}
	return nil
}

// buildConcatArgs chains xfade filters: transition i starts where the first
// i segments end, minus the i fades already overlapped.
func buildConcatArgs(segments []Segment, finalPath string, fade float64, cfg config.Config, codec string, quality int) []string {
	args := []string{"-y"}
	for _, s := range segments {
		args = append(args, "-i", s.Path)
	}
	audioIndex := -1
	if cfg.AudioPath != "" {
		audioIndex = len(segments)
		args = append(args, "-i", cfg.AudioPath)
	}

	var graph []string
	lastOut := "[0:v]"
	switch {
	case fade > 0:
		offset := 0.0
		for i := 1; i < len(segments); i++ {
			offset += segments[i-1].Duration - fade
			out := fmt.Sprintf("[v%d]", i)
			graph = append(graph, fmt.Sprintf("%s[%d:v]xfade=transition=%s:duration=%f:offset=%f%s",
				lastOut, i, cfg.TransitionType, fade, offset, out))
			lastOut = out
		}
	case len(segments) > 1:
		var inputs strings.Builder
		for i := range segments {
			fmt.Fprintf(&inputs, "[%d:v]", i)
		}
		graph = append(graph, fmt.Sprintf("%sconcat=n=%d:v=1:a=0[vconcat]", inputs.String(), len(segments)))
		lastOut = "[vconcat]"
	}

	if len(graph) > 0 {
		args = append(args, "-filter_complex", strings.Join(graph, ";"), "-map", lastOut)
	} else {
		args = append(args, "-map", "0:v")
	}
	if audioIndex >= 0 {
		args = append(args, "-map", fmt.Sprintf("%d:a", audioIndex), "-shortest")
	}

	args = append(args, "-c:v", codec, "-pix_fmt", "yuv420p")
	args = append(args, qualityArgs(codec, quality)...)
	return append(args, finalPath)
}

func tail(s string, lines int) string {
	parts := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(parts) > lines {
		parts = parts[len(parts)-lines:]
	}
	return strings.Join(parts, "\n")
}
