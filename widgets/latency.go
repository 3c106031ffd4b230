package widgets

import (
	"math"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// Block characters for latency rendering (8 levels).
var latencyBlocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

type latencySample struct {
	took   time.Duration
	failed bool
}

// LatencyHistory renders a 1-row graph of recent request durations. Failed
// requests are drawn in red.
type LatencyHistory struct {
	samples []latencySample
	head    int
	count   int
}

// NewLatencyHistory creates a LatencyHistory keeping the last capacity
// samples.
func NewLatencyHistory(capacity int) *LatencyHistory {
	return &LatencyHistory{
		samples: make([]latencySample, max(capacity, 1)),
	}
}

// Record adds a completed request to the ring buffer.
func (h *LatencyHistory) Record(took time.Duration, failed bool) {
	h.samples[h.head] = latencySample{took: took, failed: failed}
	h.head = (h.head + 1) % len(h.samples)
	if h.count < len(h.samples) {
		h.count++
	}
}

// Len returns the number of samples currently stored.
func (h *LatencyHistory) Len() int {
	return h.count
}

// Durations returns the stored durations, oldest first.
func (h *LatencyHistory) Durations() []time.Duration {
	out := make([]time.Duration, 0, h.count)
	for _, s := range h.ordered() {
		out = append(out, s.took)
	}
	return out
}

func (h *LatencyHistory) ordered() []latencySample {
	if h.count == 0 {
		return nil
	}
	out := make([]latencySample, h.count)
	start := (h.head - h.count + len(h.samples)) % len(h.samples)
	for i := 0; i < h.count; i++ {
		out[i] = h.samples[(start+i)%len(h.samples)]
	}
	return out
}

// Draw renders the newest samples that fit, scaled against the slowest.
func (h *LatencyHistory) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, h)

	samples := h.ordered()
	if width := int(ctx.Max.Width); len(samples) > width {
		samples = samples[len(samples)-width:]
	}

	var slowest time.Duration
	for _, sm := range samples {
		slowest = max(slowest, sm.took)
	}

	for i, sm := range samples {
		level := 0
		if slowest > 0 {
			level = min(int(math.Round(float64(sm.took)/float64(slowest)*7)), 7)
		}

		style := vaxis.Style{Foreground: vaxis.IndexColor(6)} // cyan
		if sm.failed {
			style.Foreground = vaxis.IndexColor(1) // red
		}
		for _, c := range ctx.Characters(string(latencyBlocks[level])) {
			s.WriteCell(uint16(i), 0, vaxis.Cell{Character: c, Style: style})
		}
	}

	return s, nil
}
