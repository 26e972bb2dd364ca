package app

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"helpdesk/internal/shared/errors"
)

// Run opens the container for one command invocation, runs fn and releases
// the container.
func Run(cmd *cobra.Command, opts *Options, fn func(ctx context.Context, c *Container) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := Open(ctx, *opts, Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer c.Close()

	if yes, ferr := cmd.Flags().GetBool("yes"); ferr == nil {
		c.Prompt.AssumeYes = yes
	}
	return fn(ctx, c)
}

// Describe renders an error for the terminal: the alert message followed by
// one line per rejected field. A signed-out failure ends with how to sign in.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	appErr := errors.GetAppError(err)
	if appErr == nil {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(errors.UserMessage(err))
	if appErr.Details != "" {
		b.WriteString(" (" + appErr.Details + ")")
	}
	for _, f := range appErr.Fields {
		b.WriteString("\n  " + f.Field + ": " + f.Message)
	}
	if errors.IsUnauthorizedError(err) && len(appErr.Fields) == 0 {
		b.WriteString("\n" + signInHint)
	}
	return b.String()
}

const signInHint = "Entre com: helpdesk login"

// Exit statuses of the console.
const (
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitDenied       = 3
	ExitNotFound     = 4
)

// ExitCode maps err to the process exit status. Errors that are not
// AppErrors, such as transport failures, exit with ExitFailure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case !errors.IsAppError(err):
		return ExitFailure
	case errors.IsValidationError(err):
		return ExitInvalidInput
	case errors.IsUnauthorizedError(err), errors.IsForbiddenError(err):
		return ExitDenied
	case errors.IsNotFoundError(err):
		return ExitNotFound
	default:
		return ExitFailure
	}
}
