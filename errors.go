package fs7

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// BuildError is the error type returned by every stage of image
// construction. All build errors are fatal: the engine never continues
// past one, and a partial image is never emitted.
type BuildError interface {
	error
	WithMessage(message string) BuildError
	Wrap(err error) BuildError
}

type baseBuildError string

const rootError = baseBuildError("")

// The error kinds the build can fail with. Callers compare with
// errors.Is against these sentinels.
var ErrNoSpace = rootError.WithMessage("No space left on surface")
var ErrInodeTableFull = rootError.WithMessage("Inode table full")
var ErrInodeConflict = rootError.WithMessage("Inode number already allocated")
var ErrPointerOverflow = rootError.WithMessage("Too many block pointers for one inode")
var ErrNoOpenDirectory = rootError.WithMessage("No directory is open")
var ErrBadPermString = rootError.WithMessage("Malformed permission string")
var ErrBadDirective = rootError.WithMessage("Malformed directive")
var ErrUnreadableSource = rootError.WithMessage("Can't read file contents")
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")
var ErrInvalidImage = rootError.WithMessage("Not a valid disk image")

func (e baseBuildError) Error() string {
	return string(e)
}

func (e baseBuildError) WithMessage(message string) BuildError {
	return customBuildError{
		message:       message,
		originalError: e,
	}
}

func (e baseBuildError) Wrap(err error) BuildError {
	return customBuildError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customBuildError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns
// a string describing the error.
func (e customBuildError) Error() string {
	return e.message
}

func (e customBuildError) WithMessage(message string) BuildError {
	return customBuildError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customBuildError) Wrap(err error) BuildError {
	return customBuildError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customBuildError) Unwrap() error {
	return e.originalError
}
