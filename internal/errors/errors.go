// Package errors provides the structured error type used across msgboard.
//
// An Error carries the operation that failed and a Kind. Callers branch on
// the Kind to pick what to show the user; the full chain goes to the log.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Op names an operation, usually "package.Function".
type Op string

// Kind is the category of a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalid
	KindIO
	KindNetwork
	KindTimeout
	KindRateLimit
	KindConfig
	KindAuth
	KindData
)

var kindNames = [...]string{
	KindUnknown:   "unknown error",
	KindInvalid:   "invalid",
	KindIO:        "I/O error",
	KindNetwork:   "network error",
	KindTimeout:   "timeout",
	KindRateLimit: "rate limited",
	KindConfig:    "configuration error",
	KindAuth:      "auth error",
	KindData:      "data error",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Error is a failure of one operation.
type Error struct {
	Op      Op
	Kind    Kind
	Err     error
	Context string
}

// Error renders as "op: context: cause", omitting empty parts.
func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Op != "" {
		parts = append(parts, string(e.Op))
	}
	if e.Context != "" {
		parts = append(parts, e.Context)
	}
	parts = append(parts, e.Err.Error())
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an Error from any mix of Op, Kind, string (context) and error
// (cause). With no cause, the context string becomes the cause.
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is an Error of the given Kind.
func Is(err error, kind Kind) bool {
	return err != nil && GetKind(err) == kind
}

// GetKind returns the Kind of the outermost Error in err's chain, or
// KindUnknown.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func AuthFailed(op string, err error) error {
	return E(Op(op), KindAuth, err)
}

func DataFailed(op, table string, err error) error {
	return E(Op(op), KindData, "table "+table, err)
}

func RequestFailed(op, path string, err error) error {
	return E(Op(op), KindNetwork, fmt.Sprintf("request to %s failed", path), err)
}

func TimedOut(op, path string, err error) error {
	return E(Op(op), KindTimeout, fmt.Sprintf("request to %s timed out", path), err)
}

func RateLimited(op string, err error) error {
	return E(Op(op), KindRateLimit, err)
}

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, "failed to load config from "+path, err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, "failed to save config to "+path, err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

func SessionLoadFailed(path string, err error) error {
	return E(Op("session.Load"), KindIO, "failed to read session from "+path, err)
}

func SessionSaveFailed(path string, err error) error {
	return E(Op("session.Save"), KindIO, "failed to write session to "+path, err)
}

// MissingField reports an empty required input.
func MissingField(op, field string) error {
	return E(Op(op), KindInvalid, field+" is required")
}
