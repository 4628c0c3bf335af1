package core

import (
	"slices"
	"sync"

	"github.com/go-drift/carousel/pkg/layout"
)

// BuildOwner collects elements whose widgets changed and rebuilds them in
// tree order before layout and paint run.
type BuildOwner struct {
	mu       sync.Mutex
	queue    []Element
	queued   map[Element]struct{}
	pipeline layout.PipelineOwner
}

// NewBuildOwner creates an owner with an empty rebuild queue.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{queued: make(map[Element]struct{})}
}

// Pipeline returns the owner that schedules render object layout and paint.
func (b *BuildOwner) Pipeline() *layout.PipelineOwner {
	return &b.pipeline
}

// ScheduleBuild enqueues the element for the next FlushBuild. Scheduling
// an already queued element is a no-op.
func (b *BuildOwner) ScheduleBuild(element Element) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.queued[element]; ok {
		return
	}
	if b.queued == nil {
		b.queued = make(map[Element]struct{})
	}
	b.queued[element] = struct{}{}
	b.queue = append(b.queue, element)
}

// NeedsWork reports whether a frame would do anything: pending rebuilds,
// layout, or paint.
func (b *BuildOwner) NeedsWork() bool {
	b.mu.Lock()
	pending := len(b.queue) > 0
	b.mu.Unlock()
	return pending || b.pipeline.NeedsLayout() || b.pipeline.NeedsPaint()
}

// FlushBuild rebuilds queued elements shallowest first, looping until
// rebuilds stop enqueueing more work.
func (b *BuildOwner) FlushBuild() {
	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.mu.Unlock()
			return
		}
		batch := b.queue
		b.queue = nil
		clear(b.queued)
		slices.SortFunc(batch, func(a, b Element) int { return a.Depth() - b.Depth() })
		b.mu.Unlock()

		for _, element := range batch {
			if m, ok := element.(interface{ isMounted() bool }); ok && !m.isMounted() {
				continue
			}
			element.RebuildIfNeeded()
		}
	}
}
