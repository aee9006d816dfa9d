package hooks

import (
	"context"

	"github.com/mark3labs/toolstatus/internal/logger"
	"github.com/mark3labs/toolstatus/internal/toolcall"
)

// Runner fires hooks as invocation records stream past.
type Runner struct {
	cfg     *Config
	workDir string
	session string

	seen      map[string]bool
	completed map[string]bool
}

// NewRunner creates a runner for session. A nil cfg yields a runner that
// never fires.
func NewRunner(cfg *Config, workDir, session string) *Runner {
	return &Runner{
		cfg:       cfg,
		workDir:   workDir,
		session:   session,
		seen:      make(map[string]bool),
		completed: make(map[string]bool),
	}
}

// Observe runs on_tool_call the first time a call ID appears and
// on_tool_complete the first time it is seen completed. Records without an
// ID are treated as new calls every time. Returns the combined hook output.
func (r *Runner) Observe(ctx context.Context, inv toolcall.Invocation) (string, error) {
	if r.cfg == nil {
		return "", nil
	}

	var hooks []*HookConfig
	if inv.ID == "" || !r.seen[inv.ID] {
		hooks = append(hooks, r.cfg.Hooks.OnToolCall...)
	}
	if inv.IsCompleted() && (inv.ID == "" || !r.completed[inv.ID]) {
		hooks = append(hooks, r.cfg.Hooks.OnToolComplete...)
	}
	if inv.ID != "" {
		r.seen[inv.ID] = true
		if inv.IsCompleted() {
			r.completed[inv.ID] = true
		}
	}
	if len(hooks) == 0 {
		return "", nil
	}

	return ExecuteAll(ctx, hooks, r.workDir, VariablesFor(r.session, inv))
}

// Tee forwards every record from in to the returned channel, running hooks
// for each one first. The returned channel closes when in closes or ctx is
// done.
func (r *Runner) Tee(ctx context.Context, in <-chan toolcall.Invocation) <-chan toolcall.Invocation {
	out := make(chan toolcall.Invocation, cap(in))
	go func() {
		defer close(out)
		for {
			select {
			case inv, ok := <-in:
				if !ok {
					return
				}
				output, err := r.Observe(ctx, inv)
				if err != nil {
					return
				}
				if output != "" {
					logger.Info("Hook output for %s: %s", inv.ID, output)
				}
				select {
				case out <- inv:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
