package progress

import (
	"math"
	"time"
)

// Default progress range and throttle settings.
const (
	// DefaultBeginValue is the starting progress when no range is given.
	DefaultBeginValue = 0.0
	// DefaultEndValue is the ending progress when no range is given.
	DefaultEndValue = 1.0
	// DefaultMinValueDelta is the progress growth required for a post to
	// pass the throttle.
	DefaultMinValueDelta = 0.01
	// DefaultMinTimeDelta is the wall time after which a post passes the
	// throttle regardless of growth.
	DefaultMinTimeDelta = 500 * time.Millisecond
)

// IndeterminateValue is the sentinel posted when progress is unknown.
// Any negative value delivered to a Task means the same thing.
const IndeterminateValue = -1.0

// interval is one node of the progress tree. Intervals live in the
// Handler's stack rather than linking to their parents, so the tree is a
// plain slice with the current interval on top.
type interval struct {
	begin   float64
	end     float64
	current float64
	// stepInc is the advance per step. Zero means fraction mode: the
	// interval only moves through PostFraction.
	stepInc float64
}

func (iv *interval) width() float64 {
	return iv.end - iv.begin
}

func (iv *interval) remaining() float64 {
	return iv.end - iv.current
}

// Handler posts progress and message events for a Task.
//
// A Handler is owned by the single goroutine driving the operation; it is
// not safe for concurrent use. Subsection and PostEnd follow stack
// discipline: every subsection must end before its parent ends or a
// sibling begins.
type Handler struct {
	task Task // nil means compute but never deliver

	stack []interval // stack[0] is the root, the top is current

	// Throttle state, shared by the whole tree.
	lastValue     float64
	lastTime      time.Time
	indeterminate bool
	minValueDelta float64
	minTimeDelta  time.Duration

	retired bool

	now func() time.Time // injectable clock
}

// NewHandler creates a handler whose root interval spans [begin, end] with
// the given number of steps. A step count of zero sets up fractional
// posting: PostStep and PostSteps do nothing and PostFraction drives the
// interval. The task may be nil, in which case values are computed but
// never delivered.
func NewHandler(task Task, begin, end float64, steps int) *Handler {
	root := interval{begin: begin, end: end, current: begin}
	if steps > 0 {
		root.stepInc = (end - begin) / float64(steps)
	}
	return &Handler{
		task:  task,
		stack: []interval{root},
		// Starts below any real value so the first post always passes.
		lastValue:     math.Inf(-1),
		minValueDelta: DefaultMinValueDelta,
		minTimeDelta:  DefaultMinTimeDelta,
		now:           time.Now,
	}
}

// NewTaskHandler creates a handler bound to the task's declared progress
// range. A step count of zero sets up fractional posting.
func NewTaskHandler(task Task, steps int) *Handler {
	begin, end := DefaultBeginValue, DefaultEndValue
	if task != nil {
		begin, end = task.BeginProgress(), task.EndProgress()
	}
	return NewHandler(task, begin, end, steps)
}

// SetMinValueDelta sets the progress growth a post must reach to pass the
// throttle. Smaller posts are dropped unless the time fallback fires.
func (h *Handler) SetMinValueDelta(delta float64) {
	h.minValueDelta = delta
}

// SetMinTimeDelta sets the wall time after which a post passes the
// throttle regardless of growth.
func (h *Handler) SetMinTimeDelta(d time.Duration) {
	h.minTimeDelta = d
}

// Canceled reports whether the task requested cancellation. A handler
// without a task is never canceled.
func (h *Handler) Canceled() bool {
	return h.task != nil && h.task.IsCanceled()
}

// PostMessage forwards a text note to the task. Messages are never
// throttled.
func (h *Handler) PostMessage(msg string) {
	if h.task != nil {
		h.task.PostMessage(msg)
	}
}

// Current returns the current interval's position.
func (h *Handler) Current() float64 {
	return h.top().current
}

// PostBegin emits the root's begin value. It only applies before any other
// posting: once the root has moved or a subsection exists it does nothing.
func (h *Handler) PostBegin() {
	if len(h.stack) == 1 && h.stack[0].current == h.stack[0].begin {
		h.PostFraction(0.0)
	}
}

// PostFraction sets the current interval's position to the given fraction
// of its range and attempts an emission. The fraction is clamped to
// [0, 1]; callers should ensure it grows between repeated calls.
func (h *Handler) PostFraction(fraction float64) {
	fraction = min(max(fraction, 0.0), 1.0)
	cur := h.top()
	cur.current = cur.begin + fraction*cur.width()
	h.postValue(cur.current, false)
}

// PostStep advances the current interval by one step and attempts an
// emission. In fraction mode it does nothing.
func (h *Handler) PostStep() {
	h.PostSteps(1)
}

// PostSteps advances the current interval by n steps, clamped to the
// interval's end, and attempts an emission. Negative n and fraction mode
// do nothing.
func (h *Handler) PostSteps(n int) {
	cur := h.top()
	if n < 0 || cur.stepInc == 0 {
		return
	}
	cur.current = min(cur.end, cur.current+float64(n)*cur.stepInc)
	h.postValue(cur.current, false)
}

// PostIndeterminate emits the indeterminate sentinel, bypassing the
// throttle. The next real value is also guaranteed to be emitted, so an
// indeterminate-to-determinate transition is never lost.
func (h *Handler) PostIndeterminate() {
	h.postValue(IndeterminateValue, true)
}

// PostEnd completes the current interval: it forces the position to 100%
// of the interval's range, then pops back to the parent. Ending the root
// emits the root's end value unconditionally and retires the handler;
// calling PostEnd again after that is a contract violation and panics.
func (h *Handler) PostEnd() {
	if h.retired {
		panic("progress: PostEnd after the root interval ended")
	}
	h.PostFraction(1.0)
	if len(h.stack) > 1 {
		h.stack = h.stack[:len(h.stack)-1]
		return
	}
	h.postValue(h.stack[0].end, true)
	h.retired = true
}

// Subsection pushes a child interval set up for fractional posting. The
// child claims the given fraction of the current interval's remaining
// range, and the current interval's position jumps to the child's end
// immediately so that nested emissions never regress the parent below the
// subsection's eventual completion.
func (h *Handler) Subsection(fraction float64) {
	h.SubsectionSteps(fraction, 0)
}

// SubsectionSteps pushes a child interval set up for step-by-step posting
// across the given fraction of the current interval's remaining range.
//
// Example, splitting an operation into three phases of which the middle
// one has 10 steps:
//
//	ph := progress.NewTaskHandler(task, 0)
//	ph.PostBegin()
//
//	ph.Subsection(0.5)
//	ph.PostFraction(0.3)
//	ph.PostFraction(0.7)
//	ph.PostEnd()
//
//	ph.SubsectionSteps(0.6, 10)
//	for range 10 {
//		ph.PostStep()
//	}
//	ph.PostEnd()
//
//	ph.Subsection(1.0)
//	ph.PostEnd()
//
//	ph.PostEnd() // the root
func (h *Handler) SubsectionSteps(fraction float64, steps int) {
	cur := h.top()
	begin := cur.current
	end := begin + fraction*cur.remaining()
	if end > cur.end {
		// Floating-point drift must not push the child past the parent.
		end = cur.end
	}
	h.push(begin, end, steps)
}

// StepSubsection pushes a child interval spanning the current interval's
// next step increment, so one coarse step can be refined into its own
// step-by-step section.
func (h *Handler) StepSubsection(steps int) {
	cur := h.top()
	end := min(cur.end, cur.current+cur.stepInc)
	h.push(cur.current, end, steps)
}

// Convert turns the current interval into a fraction-mode interval in
// place: same range, step configuration discarded.
func (h *Handler) Convert() {
	h.top().stepInc = 0
}

func (h *Handler) push(begin, end float64, steps int) {
	child := interval{begin: begin, end: end, current: begin}
	if steps > 0 {
		child.stepInc = (end - begin) / float64(steps)
	}
	h.top().current = end
	h.stack = append(h.stack, child)
}

func (h *Handler) top() *interval {
	return &h.stack[len(h.stack)-1]
}

// postValue delivers a value to the task when forced or when the throttle
// allows it.
func (h *Handler) postValue(value float64, force bool) {
	if !force && !h.okToPost(value) {
		return
	}
	h.lastValue = value
	h.lastTime = h.now()
	h.indeterminate = value < 0
	if h.task != nil {
		h.task.PostProgress(value)
	}
}

// okToPost applies the emission policy: a value passes when the last
// emission was the indeterminate sentinel and this one is real, when it
// grew enough since the last emission, or when enough wall time passed.
func (h *Handler) okToPost(value float64) bool {
	return (h.indeterminate && value >= 0) ||
		value-h.lastValue >= h.minValueDelta ||
		h.now().Sub(h.lastTime) >= h.minTimeDelta
}
