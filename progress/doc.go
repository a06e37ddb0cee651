// Package progress reports hierarchical progress for long-running
// operations.
//
// A Handler owns a tree of nested intervals over a task's progress range.
// The root interval spans the whole range; subsections claim a fraction of
// the remaining range of the interval they nest inside, so a callee can
// report 0%..100% of its own work without knowing where that work sits in
// the caller's range. Intervals advance either step by step (PostStep) or
// by fraction (PostFraction), and are torn down in strict stack order with
// PostEnd.
//
// Computed values pass through a throttle before reaching the task: a
// value is emitted only when it grew by a minimum delta, when a minimum
// wall-time has passed, or when the handler guarantees delivery (the root's
// final value, indeterminate transitions). This keeps tight loops from
// flooding a slow listener while the time fallback preserves liveness.
package progress
