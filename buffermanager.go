package pane

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// Compressible is implemented by anything whose allocation may be shrunk to
// make room for others.
type Compressible interface {
	CanCompressTo(lines int) bool
}

// BufferOption configures a BufferManager.
type BufferOption func(*BufferManager)

// WithBufferLogger sets the logger used for allocation diagnostics.
func WithBufferLogger(l *slog.Logger) BufferOption {
	return func(bm *BufferManager) { bm.logger = l }
}

// WithCompressHook registers a callback invoked whenever an allocation is
// compressed so its owner can re-derive the element's requirement.
func WithCompressHook(fn func(id string, lines int)) BufferOption {
	return func(bm *BufferManager) { bm.onCompress = fn }
}

type allocation struct {
	id       string
	pos      BufferPosition
	req      SpaceRequirement
	lines    []string
	compress Compressible
}

// BufferManager tracks per-element line allocations inside a terminal
// viewport of fixed height and turns edits into a minimal set of line writes.
//
// Allocations are packed top to bottom in allocation order. Edits only touch
// the virtual buffer; Flush reports the lines that differ from what was last
// flushed. The intended cycle is: mutate freely, flush once.
//
// BufferManager is not safe for concurrent use.
type BufferManager struct {
	height  int
	order   []*allocation
	byID    map[string]*allocation
	virtual []string // composed content, what the terminal should show
	shown   []string // content as of the last flush
	known   []bool   // shown[i] is what the terminal holds
	dirty   map[int]struct{}

	logger     *slog.Logger
	onCompress func(id string, lines int)
}

// NewBufferManager creates a buffer manager for a viewport of height lines.
func NewBufferManager(height int, opts ...BufferOption) *BufferManager {
	if height < 0 {
		height = 0
	}
	bm := &BufferManager{
		height:  height,
		byID:    make(map[string]*allocation),
		virtual: make([]string, height),
		shown:   make([]string, height),
		known:   make([]bool, height),
		dirty:   make(map[int]struct{}),
		logger:  discardLogger(),
	}
	for _, opt := range opts {
		opt(bm)
	}
	return bm
}

// Height returns the viewport height.
func (bm *BufferManager) Height() int {
	return bm.height
}

// Used returns the number of allocated lines.
func (bm *BufferManager) Used() int {
	used := 0
	for _, a := range bm.order {
		used += a.pos.AllocatedLines
	}
	return used
}

// Available returns the number of unallocated lines.
func (bm *BufferManager) Available() int {
	return bm.height - bm.Used()
}

// IDs returns the allocated ids in visual (top to bottom) order.
func (bm *BufferManager) IDs() []string {
	ids := make([]string, len(bm.order))
	for i, a := range bm.order {
		ids[i] = a.id
	}
	return ids
}

// Position returns the current position for id.
func (bm *BufferManager) Position(id string) (BufferPosition, bool) {
	a, ok := bm.byID[id]
	if !ok {
		return BufferPosition{}, false
	}
	return a.pos, true
}

// Requirement returns the last requirement recorded for id.
func (bm *BufferManager) Requirement(id string) (SpaceRequirement, bool) {
	a, ok := bm.byID[id]
	if !ok {
		return SpaceRequirement{}, false
	}
	return a.req, true
}

// Lines returns a copy of the content of id's region.
func (bm *BufferManager) Lines(id string) ([]string, bool) {
	a, ok := bm.byID[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(a.lines), true
}

// Snapshot returns a copy of the virtual buffer.
func (bm *BufferManager) Snapshot() []string {
	return slices.Clone(bm.virtual)
}

// AllocateSpace assigns id a range after the last allocation. The range is
// req.PreferredLines long, clamped to the remaining height but never below
// req.MinLines. Allocating an id that is already registered returns its
// existing position unchanged.
func (bm *BufferManager) AllocateSpace(id string, req SpaceRequirement) (BufferPosition, error) {
	return bm.allocate(id, req, nil, len(bm.order))
}

// AllocateCompressible is AllocateSpace for an allocation that may later be
// compressed to make room for others.
func (bm *BufferManager) AllocateCompressible(id string, req SpaceRequirement, c Compressible) (BufferPosition, error) {
	return bm.allocate(id, req, c, len(bm.order))
}

// AllocateSpaceBefore inserts id ahead of the allocation registered as before,
// shifting it and everything after it down. An unknown or empty before
// appends.
func (bm *BufferManager) AllocateSpaceBefore(id, before string, req SpaceRequirement, c Compressible) (BufferPosition, error) {
	at := len(bm.order)
	if before != "" {
		if i := bm.indexOf(before); i >= 0 {
			at = i
		}
	}
	return bm.allocate(id, req, c, at)
}

func (bm *BufferManager) allocate(id string, req SpaceRequirement, c Compressible, at int) (BufferPosition, error) {
	if a, ok := bm.byID[id]; ok {
		return a.pos, nil
	}
	if err := req.Validate(); err != nil {
		return BufferPosition{}, fmt.Errorf("allocate %q: %w", id, err)
	}

	avail := bm.Available()
	if avail < req.MinLines {
		plan, ok := bm.compressionPlan(req.MinLines-avail, "")
		if !ok {
			return BufferPosition{}, &OutOfSpaceError{Element: id, Requested: req.MinLines, Available: avail}
		}
		bm.applyPlan(plan)
		avail = bm.Available()
	}

	lines := min(req.PreferredLines, avail)
	lines = max(lines, req.MinLines)

	a := &allocation{
		id:       id,
		pos:      BufferPosition{AllocatedLines: lines},
		req:      req,
		lines:    make([]string, lines),
		compress: c,
	}
	bm.order = slices.Insert(bm.order, at, a)
	bm.byID[id] = a
	bm.relayout()
	bm.recompose()

	bm.logger.Debug("allocate", "id", id, "start", a.pos.StartLine, "lines", lines, "available", bm.Available())
	return a.pos, nil
}

// UpdateRequirement records the latest requirement reported for id.
func (bm *BufferManager) UpdateRequirement(id string, req SpaceRequirement) error {
	a, ok := bm.byID[id]
	if !ok {
		return &UnregisteredElementError{Element: id}
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("update %q: %w", id, err)
	}
	a.req = req
	return nil
}

// ApplyBufferDelta applies d to the region held by id. A non-zero SpaceChange
// first grows the region (blank lines appended) or shrinks it (lines dropped
// from the end) and shifts every later allocation. Nothing is written to the
// terminal; changed lines are collected for the next Flush.
func (bm *BufferManager) ApplyBufferDelta(id string, d BufferDelta) error {
	a, ok := bm.byID[id]
	if !ok {
		return &UnregisteredElementError{Element: id}
	}

	newLines := a.pos.AllocatedLines + d.SpaceChange
	if newLines < 0 {
		return fmt.Errorf("%w: %q cannot shrink by %d from %d lines",
			ErrInvalidRequirement, id, -d.SpaceChange, a.pos.AllocatedLines)
	}
	if d.SpaceChange != 0 && (newLines < a.req.MinLines || newLines > a.req.MaxLines) {
		return fmt.Errorf("%w: %q resized to %d lines outside [%d, %d]",
			ErrInvalidRequirement, id, newLines, a.req.MinLines, a.req.MaxLines)
	}
	for _, u := range d.LineUpdates {
		if u.Line < 0 || u.Line >= newLines {
			return fmt.Errorf("%w: %q line %d of %d", ErrLineOutOfRange, id, u.Line, newLines)
		}
	}
	for _, l := range d.ClearLines {
		if l < 0 || l >= newLines {
			return fmt.Errorf("%w: %q clear line %d of %d", ErrLineOutOfRange, id, l, newLines)
		}
	}

	switch {
	case d.SpaceChange > 0:
		if avail := bm.Available(); d.SpaceChange > avail {
			plan, ok := bm.compressionPlan(d.SpaceChange-avail, id)
			if !ok {
				return &OutOfSpaceError{Element: id, Requested: d.SpaceChange, Available: avail}
			}
			bm.applyPlan(plan)
		}
		a.lines = append(a.lines, make([]string, d.SpaceChange)...)
	case d.SpaceChange < 0:
		a.lines = a.lines[:newLines]
	}
	if d.SpaceChange != 0 {
		a.pos.AllocatedLines = newLines
		bm.relayout()
		bm.logger.Debug("resize", "id", id, "lines", newLines, "change", d.SpaceChange)
	}

	for _, u := range d.LineUpdates {
		a.lines[u.Line] = u.Text
		bm.mark(a.pos.StartLine + u.Line)
	}
	for _, l := range d.ClearLines {
		a.lines[l] = ""
		bm.unknown(a.pos.StartLine + l)
	}
	bm.recompose()
	return nil
}

// Deallocate releases the range held by id. Later allocations move up and the
// vacated lines are repainted on the next Flush.
func (bm *BufferManager) Deallocate(id string) error {
	i := bm.indexOf(id)
	if i < 0 {
		return &UnregisteredElementError{Element: id}
	}
	freed := bm.order[i].pos.AllocatedLines
	bm.order = slices.Delete(bm.order, i, i+1)
	delete(bm.byID, id)
	bm.relayout()
	bm.recompose()

	bm.logger.Debug("deallocate", "id", id, "freed", freed)
	return nil
}

// Flush returns the lines changed since the previous flush in ascending order
// and clears the dirty state. Lines that were touched but ended up with the
// text already on screen are skipped; a line never flushed, or cleared since,
// is always written.
func (bm *BufferManager) Flush() []LineUpdate {
	if len(bm.dirty) == 0 {
		return nil
	}
	var out []LineUpdate
	for _, line := range slices.Sorted(maps.Keys(bm.dirty)) {
		if line >= bm.height {
			continue
		}
		text := bm.virtual[line]
		if bm.known[line] && bm.shown[line] == text {
			continue
		}
		out = append(out, LineUpdate{Line: line, Text: text})
		bm.shown[line] = text
		bm.known[line] = true
	}
	clear(bm.dirty)
	return out
}

// Invalidate marks every line dirty so the next Flush repaints the viewport,
// for when the terminal content is no longer known (resize, external output).
func (bm *BufferManager) Invalidate() {
	for i := 0; i < bm.height; i++ {
		bm.unknown(i)
	}
}

// Resize changes the viewport height. Shrinking below the allocated total
// compresses allocations first and fails with *OutOfSpaceError, leaving the
// manager untouched, when that is not enough.
func (bm *BufferManager) Resize(height int) error {
	if height < 0 {
		height = 0
	}
	if used := bm.Used(); used > height {
		plan, ok := bm.compressionPlan(used-height, "")
		if !ok {
			return &OutOfSpaceError{Element: "", Requested: used, Available: height}
		}
		bm.applyPlan(plan)
	}
	bm.height = height
	bm.virtual = make([]string, height)
	bm.shown = make([]string, height)
	bm.known = make([]bool, height)
	bm.relayout()
	bm.recompose()
	bm.Invalidate()
	return nil
}

type compression struct {
	a     *allocation
	lines int
}

// compressionPlan picks allocations to shrink, latest first, until need lines
// are freed. The allocation named skip is left alone.
func (bm *BufferManager) compressionPlan(need int, skip string) ([]compression, bool) {
	var plan []compression
	for i := len(bm.order) - 1; i >= 0 && need > 0; i-- {
		a := bm.order[i]
		if a.compress == nil || a.id == skip {
			continue
		}
		target := max(a.pos.AllocatedLines-need, a.req.MinLines)
		for target < a.pos.AllocatedLines && !a.compress.CanCompressTo(target) {
			target++
		}
		if target >= a.pos.AllocatedLines {
			continue
		}
		plan = append(plan, compression{a: a, lines: target})
		need -= a.pos.AllocatedLines - target
	}
	return plan, need <= 0
}

func (bm *BufferManager) applyPlan(plan []compression) {
	for _, c := range plan {
		c.a.pos.AllocatedLines = c.lines
		c.a.lines = c.a.lines[:c.lines]
		bm.logger.Debug("compress", "id", c.a.id, "lines", c.lines)
		if bm.onCompress != nil {
			bm.onCompress(c.a.id, c.lines)
		}
	}
	bm.relayout()
}

func (bm *BufferManager) indexOf(id string) int {
	return slices.IndexFunc(bm.order, func(a *allocation) bool { return a.id == id })
}

// relayout packs allocations top to bottom in order.
func (bm *BufferManager) relayout() {
	start := 0
	for _, a := range bm.order {
		a.pos.StartLine = start
		start += a.pos.AllocatedLines
	}
}

// recompose rebuilds the virtual buffer from the allocations and marks every
// line whose text moved or changed.
func (bm *BufferManager) recompose() {
	next := make([]string, bm.height)
	for _, a := range bm.order {
		for i, text := range a.lines {
			line := a.pos.StartLine + i
			if line >= bm.height {
				break
			}
			next[line] = text
		}
	}
	for i := range next {
		if next[i] != bm.virtual[i] {
			bm.mark(i)
		}
	}
	bm.virtual = next
}

func (bm *BufferManager) mark(line int) {
	if line >= 0 && line < bm.height {
		bm.dirty[line] = struct{}{}
	}
}

// unknown marks line dirty and forgets what the terminal shows there.
func (bm *BufferManager) unknown(line int) {
	if line >= 0 && line < bm.height {
		bm.dirty[line] = struct{}{}
		bm.known[line] = false
	}
}
