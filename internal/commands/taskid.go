package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"tasktrack/internal/exitcode"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the task id from the first positional argument.
// Ids are positive decimal integers; extra arguments are rejected.
func ParseTaskID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := args[0]
	if !isAllDigits(arg) {
		return 0, fmt.Errorf("invalid task id: %s", arg)
	}
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", arg)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parseTaskIDOrFail parses the id and reports a usage error on failure.
// ok is false when the command should exit with exitcode.UserError.
func parseTaskIDOrFail(args []string, errOut io.Writer) (id int, ok bool) {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, false
	}
	return id, true
}

// reportError prints a service error and returns its exit code.
func reportError(errOut io.Writer, err error) int {
	code := exitcode.FromError(err)
	switch code {
	case exitcode.UserError:
		fmt.Fprintf(errOut, "error: %v\n", err)
	case exitcode.AuthError:
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	}
	return code
}

// printOK prints the confirmation for mutating commands.
func printOK(out io.Writer, quiet bool) {
	if !quiet {
		fmt.Fprintln(out, "ok")
	}
}
