package catalogyaml

import (
	"errors"
	"fmt"

	"github.com/lingokit/catalogyaml/internal/parser"
	"github.com/lingokit/catalogyaml/tree"
)

// Failure is implemented by every error the adapter reports for a document
// or tree, so callers can treat them as a single "command failed" outcome.
type Failure interface {
	error
	failure()
}

// IsFailure reports whether err wraps a Failure.
func IsFailure(err error) bool {
	var f Failure

	return errors.As(err, &f)
}

/* Document errors */

// SyntaxError denotes a document that is not well-formed YAML or that does not
// describe a translation tree.
type SyntaxError struct {
	Line    int
	Message string
}

// Error returns the formatted syntax error.
func (e SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("yaml: line %d: %s", e.Line, e.Message)
	}

	return "yaml: " + e.Message
}

func (SyntaxError) failure() {}

// DisallowedTypeError denotes a node whose tag is not a permitted class.
type DisallowedTypeError struct {
	Tag  string
	Line int
}

// Error returns the formatted error.
func (e DisallowedTypeError) Error() string {
	return fmt.Sprintf("yaml: line %d: tag %s is not a permitted class", e.Line, e.Tag)
}

func (DisallowedTypeError) failure() {}

// InvalidTreeError denotes a tree that cannot be written as YAML.
type InvalidTreeError struct {
	Path   string
	Reason string
}

// Error returns the formatted error.
func (e InvalidTreeError) Error() string {
	if e.Path == "" {
		return "invalid tree: " + e.Reason
	}

	return fmt.Sprintf("invalid tree at %s: %s", e.Path, e.Reason)
}

func (InvalidTreeError) failure() {}

/* Configuration errors */

// InvalidOptionError denotes an option value the adapter cannot use.
type InvalidOptionError struct {
	Option string
	Reason string
}

// Error returns the formatted error.
func (e InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Option, e.Reason)
}

// ConfigParseError denotes failing to parse a settings file.
type ConfigParseError struct {
	err error
}

// Error returns the formatted configuration error.
func (pe ConfigParseError) Error() string {
	return fmt.Sprintf("While parsing config: %s", pe.err.Error())
}

// Unwrap returns the wrapped error.
func (pe ConfigParseError) Unwrap() error {
	return pe.err
}

// UnsupportedConfigError denotes encountering an unsupported
// settings file type.
type UnsupportedConfigError string

// Error returns the formatted configuration error.
func (str UnsupportedConfigError) Error() string {
	return fmt.Sprintf("Unsupported Config Type %q", string(str))
}

// translate maps internal errors to the public taxonomy.
func translate(err error) error {
	var (
		tagErr    *parser.TagError
		syntaxErr *parser.SyntaxError
		invalid   *tree.InvalidError
	)

	switch {
	case errors.As(err, &tagErr):
		return DisallowedTypeError{Tag: tagErr.Tag, Line: tagErr.Line}
	case errors.As(err, &syntaxErr):
		return SyntaxError{Line: syntaxErr.Line, Message: syntaxErr.Message}
	case errors.As(err, &invalid):
		return InvalidTreeError{Path: invalid.Path, Reason: invalid.Reason}
	}

	return err
}
