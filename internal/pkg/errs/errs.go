// Package errs wraps cockroachdb/errors so the rest of the codebase never
// imports it directly. Sentinels are marked onto causes with Mark and
// recovered with errors.Is; stack traces travel with every New and Wrap.
package errs

import (
	"fmt"
	"strings"

	crerrors "github.com/cockroachdb/errors"
)

// New returns a sentinel-grade error carrying a stack trace.
func New(msg string) error {
	return crerrors.New(msg)
}

// Wrap annotates err with msg. Returns nil when err is nil so call sites
// can wrap unconditionally.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return crerrors.Wrap(err, msg)
}

// Mark attaches markErr as an equivalence marker on err: errors.Is on the
// result reports true for markErr and for everything in err's own chain.
// A nil err collapses to the marker itself.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &markedError{cause: err, mark: markErr}
}

// markedError keeps the cause's message and stack while exposing both the
// cause and the marker through the stdlib multi-unwrap protocol.
type markedError struct {
	cause error
	mark  error
}

func (e *markedError) Error() string { return e.cause.Error() }

func (e *markedError) Unwrap() []error { return []error{e.cause, e.mark} }

func (e *markedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%+v", e.cause)
		return
	}
	fmt.Fprint(s, e.Error())
}

// ExtractStackLines renders the verbose form of err and returns at most
// maxLines lines of it, for structured log fields. maxLines <= 0 means
// no limit.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
