package bloom

import (
	"errors"
	"strings"
)

var (
	// ErrFilterExists indicates BF.RESERVE hit an existing key.
	ErrFilterExists = errors.New("bloom: filter already exists")
	// ErrNonScalingFilterFull indicates a non-scaling filter reached its capacity.
	ErrNonScalingFilterFull = errors.New("bloom: non scaling filter is full")
	// ErrFilterNotFound indicates the key holds no filter.
	ErrFilterNotFound = errors.New("bloom: filter not found")
	// ErrUnknownFilter wraps any other failure reported by the store or transport.
	ErrUnknownFilter = errors.New("bloom: unknown filter exception")
	// ErrUnexpectedReply indicates a reply whose shape did not match the command.
	ErrUnexpectedReply = errors.New("bloom: unexpected reply")
	// ErrInvalidFlag indicates an insert flag outside the supported set.
	ErrInvalidFlag = errors.New("bloom: invalid insert flag")
	// ErrInvalidAttr indicates an unsupported BF.INFO attribute.
	ErrInvalidAttr = errors.New("bloom: invalid info attribute")
)

// errorRules is evaluated in order against the failure text.
var errorRules = []struct {
	pattern string
	kind    error
}{
	{"item exists", ErrFilterExists},
	{"non scaling filter is full", ErrNonScalingFilterFull},
	{"not found", ErrFilterNotFound},
}

// Error is returned by every Filter command that fails.
type Error struct {
	Op   string // BF.* command name
	Kind error  // one of the Err* sentinels
	Msg  string // original failure text
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// classify maps a transport or server failure to a typed Error.
func classify(op string, err error) error {
	msg := err.Error()
	lower := strings.ToLower(msg)
	kind := ErrUnknownFilter
	for _, r := range errorRules {
		if strings.Contains(lower, r.pattern) {
			kind = r.kind
			break
		}
	}
	return &Error{Op: op, Kind: kind, Msg: msg, Err: err}
}

func unexpected(op string, reply any) error {
	return &Error{Op: op, Kind: ErrUnexpectedReply, Msg: describe(reply)}
}
