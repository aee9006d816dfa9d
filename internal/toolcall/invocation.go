// Package toolcall models agent tool invocations and turns their arguments
// into human-readable status labels.
package toolcall

// Status is the lifecycle state of an invocation: Pending or Completed.
type Status interface {
	status()
}

// Pending marks an invocation that has not produced a result yet.
type Pending struct{}

// Completed marks an invocation that finished with Result.
type Completed struct {
	Result any
}

func (Pending) status()   {}
func (Completed) status() {}

// Invocation is one tool call made by the agent. It is owned by the agent
// runtime; this package only reads it.
type Invocation struct {
	ID       string
	ToolName string
	Args     any
	Status   Status
}

// Label returns the formatted status text for the invocation.
func (i Invocation) Label() string {
	return FormatLabel(i.ToolName, i.Args)
}

// IsCompleted reports whether the invocation finished. A nil Status is pending.
func (i Invocation) IsCompleted() bool {
	_, ok := i.Status.(Completed)
	return ok
}

// Result returns the result of a completed invocation.
func (i Invocation) Result() (any, bool) {
	c, ok := i.Status.(Completed)
	if !ok {
		return nil, false
	}
	return c.Result, true
}
