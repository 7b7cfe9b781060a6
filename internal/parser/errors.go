package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SyntaxError reports a document that is not well-formed YAML or that does
// not describe a translation tree.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("yaml: line %d: %s", e.Line, e.Message)
	}

	return "yaml: " + e.Message
}

// TagError reports a node whose tag is not in the allow list.
type TagError struct {
	Tag  string
	Line int
}

func (e *TagError) Error() string {
	return fmt.Sprintf("yaml: line %d: tag %s is not permitted", e.Line, e.Tag)
}

var lineMessage = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// syntaxError converts a yaml.v3 decoding error. yaml.v3 leaves out the
// line for problems on the first line, so those are reported at line 1.
func syntaxError(err error) *SyntaxError {
	msg := err.Error()
	if m := lineMessage.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &SyntaxError{Line: line, Message: m[2]}
	}

	return &SyntaxError{Line: 1, Message: strings.TrimPrefix(msg, "yaml: ")}
}
