package progress

// Task is the external listener a Handler reports to. It owns the declared
// progress range, receives progress values and text messages, and answers
// cancellation polls. Implementations decide how values are displayed and
// on which goroutine; the Handler only ever calls these methods from the
// goroutine driving the operation.
type Task interface {
	// BeginProgress returns the low end of the task's progress range.
	BeginProgress() float64
	// EndProgress returns the high end of the task's progress range.
	EndProgress() float64
	// PostProgress delivers an absolute progress value within the declared
	// range, or a negative sentinel meaning "progress unknown".
	PostProgress(value float64)
	// PostMessage delivers a human-readable note.
	PostMessage(msg string)
	// IsCanceled reports whether the task wants the operation to stop.
	// The operation polls this cooperatively; it is never preempted.
	IsCanceled() bool
}
