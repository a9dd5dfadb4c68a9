package core

import (
	"fmt"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Error categories. Every error returned by the bootstrapper matches
// exactly one of them through errors.Is.
var (
	ErrVulkan           = errors.New("vulkan error")
	ErrBadSurface       = errors.New("bad surface")
	ErrNoSuitableDevice = errors.New("no suitable physical device")
	ErrPlatform         = errors.New("platform error")
)

// Process exit codes
const (
	ExitSuccess          = 0
	ExitVulkan           = 1
	ExitBadSurface       = 2
	ExitNoSuitableDevice = 3
	ExitPlatform         = 4
)

// ResultError is a failed native call together with its result code
type ResultError struct {
	Call   string
	Result vk.Result
}

// NewResultError returns nil on vk.Success
func NewResultError(call string, ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	return &ResultError{Call: call, Result: ret}
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("%s: %s (%d)", e.Call, vk.Error(e.Result), e.Result)
}

// Is makes every native failure match ErrVulkan
func (e *ResultError) Is(target error) bool {
	return target == ErrVulkan
}

// CategoryError files a lower level failure under one of the error
// categories while keeping the failure reachable through errors.As.
type CategoryError struct {
	Category error
	Message  string
	Err      error
}

// WrapCategory returns a CategoryError, or nil when cause is nil.
func WrapCategory(category, cause error, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	return &CategoryError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Err:      cause,
	}
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Message, e.Err, e.Category)
}

// Is matches the category
func (e *CategoryError) Is(target error) bool {
	return target == e.Category
}

// Unwrap returns the cause
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// Cause implements the causer interface of github.com/pkg/errors
func (e *CategoryError) Cause() error {
	return e.Err
}

// ExitCode maps an error to the process exit status of its category.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrBadSurface):
		return ExitBadSurface
	case errors.Is(err, ErrNoSuitableDevice):
		return ExitNoSuitableDevice
	case errors.Is(err, ErrPlatform):
		return ExitPlatform
	default:
		return ExitVulkan
	}
}
