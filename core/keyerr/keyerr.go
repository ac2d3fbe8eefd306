// Package keyerr defines the error taxonomy shared by every layer that
// handles k1 key material.
package keyerr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindSize means the input length does not match the representation.
	KindSize
	// KindRange means a scalar is zero or not below the curve order.
	KindRange
	// KindCurveMembership means decoded coordinates are not a curve point.
	KindCurveMembership
	// KindEngine means a specific engine call failed.
	KindEngine
	// KindStructure means malformed ASN.1 or PEM.
	KindStructure
	// KindConsistency means a derived value disagrees with a supplied one.
	KindConsistency
)

func (k Kind) String() string {
	switch k {
	case KindSize:
		return "size"
	case KindRange:
		return "range"
	case KindCurveMembership:
		return "curve membership"
	case KindEngine:
		return "engine operation"
	case KindStructure:
		return "structural decode"
	case KindConsistency:
		return "consistency"
	default:
		return "unknown"
	}
}

// Reason names the engine call site that failed.
type Reason string

const (
	ReasonCreateContext          Reason = "failedToCreateContext"
	ReasonRandomizeContext       Reason = "failedToUpdateContextRandomization"
	ReasonPublicKeyParse         Reason = "publicKeyParse"
	ReasonSerializePublicKey     Reason = "failedToSerializePublicKeyIntoBytes"
	ReasonComputePublicKey       Reason = "failedToComputePublicKeyFromPrivateKey"
	ReasonUnexpectedEngineResult Reason = "unexpectedEngineResult"
)

// Error is the concrete error returned by the key layers.
type Error struct {
	Kind   Kind
	Reason Reason

	// Expected and Actual are set for size errors.
	Expected int
	Actual   int

	Msg string
	Err error
}

func (e *Error) Error() string {
	msg := "k1: " + e.Kind.String() + " error"
	if e.Reason != "" {
		msg += " (" + string(e.Reason) + ")"
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind, and by reason when the sentinel carries one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

var (
	ErrSize            = &Error{Kind: KindSize}
	ErrRange           = &Error{Kind: KindRange}
	ErrCurveMembership = &Error{Kind: KindCurveMembership}
	ErrEngine          = &Error{Kind: KindEngine}
	ErrStructure       = &Error{Kind: KindStructure}
	ErrConsistency     = &Error{Kind: KindConsistency}

	ErrPublicKeyParse         = &Error{Kind: KindCurveMembership, Reason: ReasonPublicKeyParse}
	ErrCreateContext          = &Error{Kind: KindEngine, Reason: ReasonCreateContext}
	ErrRandomizeContext       = &Error{Kind: KindEngine, Reason: ReasonRandomizeContext}
	ErrSerializePublicKey     = &Error{Kind: KindEngine, Reason: ReasonSerializePublicKey}
	ErrComputePublicKey       = &Error{Kind: KindEngine, Reason: ReasonComputePublicKey}
	ErrUnexpectedEngineResult = &Error{Kind: KindEngine, Reason: ReasonUnexpectedEngineResult}
)

// Size reports a length mismatch for the named representation.
func Size(what string, expected, actual int) error {
	return &Error{
		Kind:     KindSize,
		Expected: expected,
		Actual:   actual,
		Msg:      fmt.Sprintf("%s must be %d bytes, got %d", what, expected, actual),
	}
}

func Range(msg string) error {
	return &Error{Kind: KindRange, Msg: msg}
}

// Engine reports a failed engine call. Parse failures are classified as
// curve membership errors since the engine rejects off-curve input there.
func Engine(reason Reason, msg string) error {
	kind := KindEngine
	if reason == ReasonPublicKeyParse {
		kind = KindCurveMembership
	}
	return &Error{Kind: kind, Reason: reason, Msg: msg}
}

func Structure(msg string, err error) error {
	return &Error{Kind: KindStructure, Msg: msg, Err: err}
}

func Consistency(msg string) error {
	return &Error{Kind: KindConsistency, Msg: msg}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
