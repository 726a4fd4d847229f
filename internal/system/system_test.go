package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramePool(t *testing.T) {
	p := NewFramePool(64, 32)
	img := p.Get()
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 64, 32), img.Rect)
	assert.EqualValues(t, 1, p.Allocated())

	p.Put(img)
	p.Put(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	p.Put(nil)
	assert.Equal(t, image.Rect(0, 0, 64, 32), p.Get().Rect)
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "a.yaml")
	newer := filepath.Join(dir, "b.YAML")
	other := filepath.Join(dir, "c.txt")
	for _, p := range []string{old, newer, other} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	now := time.Now()
	require.NoError(t, os.Chtimes(old, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(other, now.Add(time.Hour), now.Add(time.Hour)))

	got, err := FindLatest(dir, ".yaml", ".yml")
	require.NoError(t, err)
	assert.Equal(t, newer, got)

	_, err = FindLatest(dir, ".mp3")
	assert.Error(t, err)
	_, err = FindLatest(filepath.Join(dir, "missing"), ".yaml")
	assert.Error(t, err)
}

func TestDefaultQuality(t *testing.T) {
	assert.Equal(t, 75, DefaultQuality("h264_videotoolbox"))
	assert.Equal(t, 28, DefaultQuality("h264_nvenc"))
	assert.Equal(t, 23, DefaultQuality("libx264"))
}

func TestDefaultWorkers(t *testing.T) {
	tests := []struct {
		name string
		host Host
		want int
	}{
		{"unknown memory", Host{LogicalCores: 8}, 8},
		{"plenty of memory", Host{LogicalCores: 8, FreeMemory: 64 << 30}, 8},
		{"tight memory", Host{LogicalCores: 8, FreeMemory: 4 * 2 * 1920 * 1080 * 4 * 3}, 3},
		{"no memory", Host{LogicalCores: 8, FreeMemory: 1}, 1},
		{"no cores", Host{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.host.DefaultWorkers(1920, 1080))
		})
	}
}

func TestHostReport(t *testing.T) {
	h := HostReport()
	assert.Positive(t, h.LogicalCores)
	assert.NotEmpty(t, h.String())
}
