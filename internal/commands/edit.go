package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Fields without a flag keep their
// current value; completion is left alone.
type EditCmd struct {
	title       string
	description string
}

// SetFields sets the replacement fields (for testing).
func (c *EditCmd) SetFields(title, description string) {
	c.title = title
	c.description = description
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return nil }
func (c *EditCmd) Synopsis() string   { return "Change a task's title or description" }
func (c *EditCmd) Usage() string      { return "tasktrack edit [--title <text>] [--description <text>] <id>" }
func (c *EditCmd) NeedsService() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.title, "t", "", "")
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskIDOrFail(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if c.title == "" && c.description == "" {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --description)")
		return exitcode.UserError
	}

	task, err := svc.GetTaskByID(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}

	if c.title != "" {
		task.Title = c.title
	}
	if c.description != "" {
		task.Description = c.description
	}

	if err := svc.UpdateTask(ctx, task); err != nil {
		return reportError(errOut, err)
	}

	printOK(out, cfg.Quiet)
	return exitcode.Success
}
