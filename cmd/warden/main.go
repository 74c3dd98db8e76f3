package main

import (
	"errors"
	"fmt"
	"os"

	wardenerrors "github.com/wardenproj/warden/pkg/errors"
)

// Exit codes distinguish the failure classes an image build script cares
// about: a malformed document, an invalid one, a document for the wrong
// operating system, and a resume with no usable snapshot.
const (
	exitParseError      = 2
	exitValidationError = 3
	exitOSMismatch      = 4
	exitResumeError     = 5
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var parseErr *wardenerrors.ParseError
	if errors.As(err, &parseErr) {
		return exitParseError
	}

	var validationErr *wardenerrors.ValidationError
	if errors.As(err, &validationErr) {
		return exitValidationError
	}

	var mismatchErr *osMismatchError
	if errors.As(err, &mismatchErr) {
		return exitOSMismatch
	}

	var persistErr *wardenerrors.PersistError
	if errors.As(err, &persistErr) {
		return exitResumeError
	}

	return 1
}
