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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tasktrack help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasktrack                                          List all tasks
  tasktrack list [common flags] [--completed | --pending]
  tasktrack add [common flags] --description <text> <title...>
  tasktrack create [common flags] --description <text> <title...>
  tasktrack show [common flags] <id>
  tasktrack edit [common flags] [--title <text>] [--description <text>] <id>
  tasktrack done [common flags] <id>                 Toggle completion
  tasktrack rm [common flags] <id>
  tasktrack serve [common flags] [--addr <host:port>]
  tasktrack login [common flags]
  tasktrack logout [common flags]
  tasktrack help
  tasktrack version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TASKTRACK_BACKEND, TASKTRACK_LOG_LEVEL, TASKTRACK_SERVER_ADDR and
  TASKTRACK_GOOGLE_TASK_LIST override config.yaml.
`
