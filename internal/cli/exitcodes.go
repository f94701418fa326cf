package cli

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/pkg/fsutil"
)

// Exit codes for richtext.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates files that are not canonical or a failed command.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrNotCanonical is returned by check when some files would change.
var ErrNotCanonical = errors.New("files are not canonical")

var (
	errUsage    = errors.New("invalid usage")
	errConfig   = errors.New("configuration error")
	errInternal = errors.New("internal error")
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNotCanonical):
		return ExitFailure
	case errors.Is(err, errUsage):
		return ExitInvalidUsage
	case errors.Is(err, errConfig):
		return ExitConfigError
	case errors.Is(err, errInternal):
		return ExitInternalError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified):
		return ExitIOError
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ExitIOError
	}
	return ExitFailure
}

// IsSilent reports whether err only carries an exit status and should not be
// logged.
func IsSilent(err error) bool {
	return errors.Is(err, ErrNotCanonical)
}

func usageError(err error) error {
	return errors.Join(errUsage, err)
}

func configError(err error) error {
	return errors.Join(errConfig, err)
}

func internalError(err error) error {
	return errors.Join(errInternal, err)
}

// usageArgs wraps a positional argument validator so its failures map to
// ExitInvalidUsage.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
