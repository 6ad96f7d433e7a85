package fsa

import "fmt"

// Sentinel errors for matching with errors.Is. An *Error matches a sentinel
// when their kinds are equal, so callers never need to compare messages.
var (
	// ErrEmptySequence indicates a zero-length input sequence. Construction
	// rejects the whole input.
	ErrEmptySequence = &Error{
		Kind:    EmptySequence,
		Message: "empty sequences are not supported",
	}

	// ErrDuplicateKey indicates that an input sequence appeared more than once.
	ErrDuplicateKey = &Error{
		Kind:    DuplicateKey,
		Message: "duplicate key",
	}

	// ErrIndexOutOfRange indicates an order-statistic query outside [0, Len).
	ErrIndexOutOfRange = &Error{
		Kind:    IndexOutOfRange,
		Message: "index out of range",
	}

	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = &Error{
		Kind:    InvalidConfig,
		Message: "invalid automaton configuration",
	}

	// ErrComparerRequired indicates that a reloaded automaton was given no
	// comparator. Order-dependent queries cannot run without one.
	ErrComparerRequired = &Error{
		Kind:    ComparerRequired,
		Message: "comparer is required",
	}

	// ErrCorrupt indicates that reloaded automaton arrays violate a structural
	// invariant.
	ErrCorrupt = &Error{
		Kind:    Corrupt,
		Message: "corrupt automaton",
	}
)

// ErrorKind classifies automaton errors into categories
type ErrorKind uint8

const (
	// EmptySequence indicates a zero-length input sequence
	EmptySequence ErrorKind = iota

	// DuplicateKey indicates a repeated input sequence
	DuplicateKey

	// IndexOutOfRange indicates a bad order-statistic index
	IndexOutOfRange

	// InvalidConfig indicates configuration validation failed
	InvalidConfig

	// ComparerRequired indicates a missing comparator on reload
	ComparerRequired

	// Corrupt indicates reloaded arrays failed validation
	Corrupt
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case EmptySequence:
		return "EmptySequence"
	case DuplicateKey:
		return "DuplicateKey"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case InvalidConfig:
		return "InvalidConfig"
	case ComparerRequired:
		return "ComparerRequired"
	case Corrupt:
		return "Corrupt"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error represents an error raised while building or querying an automaton.
//
// Key and Position are set for construction errors: Key is the offending
// sequence rendered as text and Position its offset in the input. Index and
// Count are set for IndexOutOfRange.
type Error struct {
	Kind     ErrorKind
	Message  string
	Key      string
	Position int
	Index    int
	Count    int
	Cause    error // Optional underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	switch e.Kind {
	case DuplicateKey:
		msg = fmt.Sprintf("%s: %q", e.Message, e.Key)
	case IndexOutOfRange:
		msg = fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Count)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func emptySequenceError(position int) *Error {
	return &Error{
		Kind:     EmptySequence,
		Message:  ErrEmptySequence.Message,
		Position: position,
	}
}

func duplicateKeyError(key string, position int) *Error {
	return &Error{
		Kind:     DuplicateKey,
		Message:  ErrDuplicateKey.Message,
		Key:      key,
		Position: position,
	}
}

func indexOutOfRangeError(index, count int) *Error {
	return &Error{
		Kind:    IndexOutOfRange,
		Message: ErrIndexOutOfRange.Message,
		Index:   index,
		Count:   count,
	}
}

func corruptError(format string, args ...any) *Error {
	return &Error{
		Kind:    Corrupt,
		Message: ErrCorrupt.Message,
		Cause:   fmt.Errorf(format, args...),
	}
}
