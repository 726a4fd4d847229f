package system

import (
	"image"
	"sync"
	"sync/atomic"
)

// FramePool recycles RGBA frames of one size to keep GC pressure low while
// the render workers stream frames to the encoder.
type FramePool struct {
	rect      image.Rectangle
	pool      sync.Pool
	allocated atomic.Int64
}

func NewFramePool(width, height int) *FramePool {
	p := &FramePool{rect: image.Rect(0, 0, width, height)}
	p.pool.New = func() any {
		p.allocated.Add(1)
		return image.NewRGBA(p.rect)
	}
	return p
}

// Get returns a frame with undefined contents.
func (p *FramePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put hands a frame back. Frames of another size are dropped.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect {
		return
	}
	p.pool.Put(img)
}

// Allocated is the number of frames created so far.
func (p *FramePool) Allocated() int64 {
	return p.allocated.Load()
}
