package scan

import (
	"container/heap"
	"context"
	"errors"
	"io"
)

// MergedSource combines several sources into one stream ordered by the
// resolved date-time of each line, oldest first. Lines with equal instants
// keep the order of the sources they came from.
type MergedSource struct {
	sources []Source
	heap    *lineHeap
	started bool
}

// NewMergedSource creates a Source that merges sources by resolved date-time.
func NewMergedSource(sources ...Source) *MergedSource {
	return &MergedSource{
		sources: sources,
		heap:    &lineHeap{},
	}
}

// Next returns the next line in date-time order across all sources.
// Returns io.EOF when all sources are exhausted.
func (m *MergedSource) Next(ctx context.Context) (*Line, error) {
	if !m.started {
		if err := m.initHeap(ctx); err != nil {
			return nil, err
		}
		m.started = true
	}

	if m.heap.Len() == 0 {
		return nil, io.EOF
	}

	item := heap.Pop(m.heap).(*heapItem)

	next, err := m.sources[item.sourceIdx].Next(ctx)
	switch {
	case err == nil:
		heap.Push(m.heap, &heapItem{line: next, sourceIdx: item.sourceIdx})
	case !errors.Is(err, io.EOF):
		return nil, err
	}

	return item.line, nil
}

func (m *MergedSource) initHeap(ctx context.Context) error {
	heap.Init(m.heap)

	for i, src := range m.sources {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			continue
		}
		if err != nil {
			return err
		}
		heap.Push(m.heap, &heapItem{line: line, sourceIdx: i})
	}

	return nil
}

// Skipped sums the skipped-line counts of the merged sources.
func (m *MergedSource) Skipped() int {
	total := 0
	for _, src := range m.sources {
		if c, ok := src.(SkipCounter); ok {
			total += c.Skipped()
		}
	}
	return total
}

// Close releases all source resources and returns the first error.
func (m *MergedSource) Close() error {
	var firstErr error
	for _, src := range m.sources {
		if err := src.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type heapItem struct {
	line      *Line
	sourceIdx int
}

// lineHeap implements heap.Interface ordered by Line.At, then source index.
type lineHeap []*heapItem

func (h lineHeap) Len() int { return len(h) }

func (h lineHeap) Less(i, j int) bool {
	if c := h[i].line.At.Compare(h[j].line.At); c != 0 {
		return c < 0
	}
	return h[i].sourceIdx < h[j].sourceIdx
}

func (h lineHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *lineHeap) Push(x any) {
	*h = append(*h, x.(*heapItem))
}

func (h *lineHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
