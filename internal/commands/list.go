package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/config"
	"tasktrack/internal/domain"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/output"
	"tasktrack/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tasktrack` (no args) and `tasktrack list`.
type ListCmd struct {
	completed bool
	pending   bool
}

// SetFilter sets the completion filters (for testing).
func (c *ListCmd) SetFilter(completed, pending bool) {
	c.completed = completed
	c.pending = pending
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "tasktrack list [--completed | --pending]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.completed, "completed", false, "")
	fs.BoolVar(&c.pending, "pending", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.completed && c.pending {
		fmt.Fprintln(errOut, "error: cannot use both --completed and --pending")
		return exitcode.UserError
	}

	var (
		tasks []domain.Task
		err   error
	)
	switch {
	case c.completed:
		tasks, err = svc.GetCompletedTasks(ctx)
	case c.pending:
		tasks, err = svc.GetPendingTasks(ctx)
	default:
		tasks, err = svc.GetAllTasks(ctx)
	}
	if err != nil {
		return reportError(errOut, err)
	}

	output.FormatTasks(out, tasks, cfg.Quiet)
	return exitcode.Success
}
