package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode  = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout  = "COMMAND_CONTEXT_TIMEOUT"
	commandContextFailed   = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed   = "COMMAND_EXECUTION_FAILED"
)

// Errors already carrying a category pass through untouched so wrapping
// stays idempotent across nested handlers.
func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	message := "command context error"
	code := commandContextFailed
	switch {
	case errors.Is(err, context.Canceled):
		message = "command execution cancelled"
		code = commandContextCanceled
	case errors.Is(err, context.DeadlineExceeded):
		message = "command execution deadline exceeded"
		code = commandContextTimeout
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}
