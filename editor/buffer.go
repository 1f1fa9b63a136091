// Package editor holds the revision buffer: the source text, the generated
// text, and the compare mode used to flip between them.
package editor

// CompareState replaces the isComparing/showingOriginal flag pair.
type CompareState int

const (
	NotComparing CompareState = iota
	ComparingOriginal
	ComparingGenerated
)

// State is the user-visible state derived from a Buffer.
type State int

const (
	Idle State = iota
	Ready
	CompareOriginal
	CompareGenerated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	case CompareOriginal:
		return "comparing:original"
	case CompareGenerated:
		return "comparing:generated"
	default:
		return "unknown"
	}
}

const (
	labelCompare       = "Compare texts"
	labelShowGenerated = "Show Generated"
	labelShowOriginal  = "Show Original"
	tooltipCompare     = "Compare"
)

// Buffer is not safe for concurrent use; hosts drive it from their UI loop.
type Buffer struct {
	source    string
	output    string
	hasResult bool
	compare   CompareState
	epoch     uint64
}

func New() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Source() string { return b.source }
func (b *Buffer) Output() string { return b.output }

// HasResult reports whether a non-empty result has arrived since the last
// Clear. Output going back to empty does not reset it.
func (b *Buffer) HasResult() bool { return b.hasResult }

func (b *Buffer) Compare() CompareState { return b.compare }

// Epoch changes on every Clear. Hosts capture it when a request is issued
// and drop the response if it moved.
func (b *Buffer) Epoch() uint64 { return b.epoch }

func (b *Buffer) State() State {
	switch b.compare {
	case ComparingOriginal:
		return CompareOriginal
	case ComparingGenerated:
		return CompareGenerated
	}
	if b.hasResult {
		return Ready
	}
	return Idle
}

// SetOutput stores a generation result. An empty result leaves HasResult
// as it was but ends compare mode, so the source is editable again.
func (b *Buffer) SetOutput(text string) {
	b.output = text
	if text != "" {
		b.hasResult = true
		return
	}
	b.compare = NotComparing
}

// Edit replaces the source with what the user typed. Editing while comparing
// leaves compare mode. The edited text becomes what Display shows: once the
// user types over the displayed result, the stale generated text is dropped.
func (b *Buffer) Edit(text string) {
	b.compare = NotComparing
	b.source = text
	b.output = ""
}

// ToggleCompare advances the compare cycle: original, generated, original...
// It does nothing until a result has arrived.
func (b *Buffer) ToggleCompare() {
	if !b.CanCompare() {
		return
	}
	switch b.compare {
	case NotComparing, ComparingGenerated:
		b.compare = ComparingOriginal
	case ComparingOriginal:
		b.compare = ComparingGenerated
	}
}

// Clear wipes both texts and returns to Idle.
func (b *Buffer) Clear() {
	b.source = ""
	b.output = ""
	b.hasResult = false
	b.compare = NotComparing
	b.epoch++
}

func (b *Buffer) generatedAvailable() bool {
	return b.hasResult && b.output != ""
}

// Display resolves the text the editor should show.
func (b *Buffer) Display() string {
	switch b.compare {
	case ComparingOriginal:
		return b.source
	case ComparingGenerated:
		return b.output
	}
	if b.generatedAvailable() {
		return b.output
	}
	return b.source
}

// ReadOnly is true exactly while comparing.
func (b *Buffer) ReadOnly() bool {
	return b.compare != NotComparing
}

func (b *Buffer) CanClear() bool {
	return b.source != "" || b.output != ""
}

func (b *Buffer) CanCopy() bool {
	return b.CanClear()
}

func (b *Buffer) CanCompare() bool {
	return b.hasResult
}

// CompareLabel is the accessible label of the compare control.
func (b *Buffer) CompareLabel() string {
	switch b.compare {
	case ComparingOriginal:
		return labelShowGenerated
	case ComparingGenerated:
		return labelShowOriginal
	default:
		return labelCompare
	}
}

func (b *Buffer) CompareTooltip() string {
	if b.compare == NotComparing {
		return tooltipCompare
	}
	return b.CompareLabel()
}

// CopyText is the primary text: the result when one exists and the buffer is
// not comparing, otherwise the source. It ignores which side compare mode is
// currently showing.
func (b *Buffer) CopyText() string {
	if b.generatedAvailable() && b.compare == NotComparing {
		return b.output
	}
	return b.source
}
