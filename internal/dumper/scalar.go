package dumper

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/lingokit/catalogyaml/tree"
)

type style int

const (
	plainStyle style = iota
	singleQuotedStyle
	doubleQuotedStyle
	literalStyle
)

// indicators may not start a plain scalar.
const indicators = "-?:,[]{}#&*!|>'\"%@`"

// yaml11Bools are read as booleans by YAML 1.1 parsers.
var yaml11Bools = map[string]bool{
	"y": true, "Y": true, "yes": true, "Yes": true, "YES": true,
	"n": true, "N": true, "no": true, "No": true, "NO": true,
	"on": true, "On": true, "ON": true,
	"off": true, "Off": true, "OFF": true,
}

// scalar writes s followed by a newline. indent is the column of the owning
// mapping key or sequence dash, col the current column.
func (e *emitter) scalar(s tree.Scalar, indent, col int, path string) error {
	tag := s.Tag
	if _, ok := s.Value.([]byte); ok && tag == "" {
		tag = "!!binary"
	}
	if tag != "" {
		text, err := tagText(tag)
		if err != nil {
			return &tree.InvalidError{Path: path, Reason: err.Error()}
		}
		e.sb.WriteString(text)
		e.sb.WriteByte(' ')
		col += runeCount(text) + 1
	}

	switch v := s.Value.(type) {
	case nil:
		e.sb.WriteString("null")
	case string:
		return e.str(v, indent, col, path)
	case tree.Symbol:
		return e.str(string(v), indent, col, path)
	case int64:
		e.sb.WriteString(strconv.FormatInt(v, 10))
	case uint64:
		e.sb.WriteString(strconv.FormatUint(v, 10))
	case float64:
		e.sb.WriteString(formatFloat(v))
	case bool:
		e.sb.WriteString(strconv.FormatBool(v))
	case time.Time:
		e.sb.WriteString(formatTime(v))
	case []byte:
		e.sb.WriteString(base64.StdEncoding.EncodeToString(v))
	default:
		return &tree.InvalidError{Path: path, Reason: fmt.Sprintf("unsupported scalar value of type %T", v)}
	}
	e.sb.WriteByte('\n')

	return nil
}

func (e *emitter) str(s string, indent, col int, path string) error {
	if !utf8.ValidString(s) {
		return &tree.InvalidError{Path: path, Reason: "string is not valid UTF-8"}
	}

	switch styleOf(s) {
	case literalStyle:
		e.literal(s, indent)
		return nil
	case plainStyle:
		e.plain(s, indent, col)
	case singleQuotedStyle:
		e.sb.WriteString(singleQuote(s))
	default:
		e.sb.WriteString(doubleQuote(s))
	}
	e.sb.WriteByte('\n')

	return nil
}

// literal writes s as a literal block scalar. Any number of trailing
// newlines is written with clip chomping, so the value reads back with one.
func (e *emitter) literal(s string, indent int) {
	body := strings.TrimRight(s, "\n")

	e.sb.WriteByte('|')
	if body[0] == ' ' || body[0] == '\n' {
		e.sb.WriteString(strconv.Itoa(e.cfg.Indent))
	}
	if len(body) == len(s) {
		e.sb.WriteByte('-')
	}
	e.sb.WriteByte('\n')

	for _, line := range strings.Split(body, "\n") {
		if line != "" {
			e.writeIndent(indent + e.cfg.Indent)
			e.sb.WriteString(line)
		}
		e.sb.WriteByte('\n')
	}
}

// plain writes s as a plain scalar, folding it at single spaces followed by
// a letter or digit once the line would exceed the configured width.
func (e *emitter) plain(s string, indent, col int) {
	width := e.cfg.LineWidth
	if width <= 0 || col+runeCount(s) <= width {
		e.sb.WriteString(s)
		return
	}

	cont := indent + e.cfg.Indent
	start, last, lineCol := 0, -1, col
	for i := 1; i <= len(s); i++ {
		if i < len(s) && !foldable(s, i) {
			continue
		}
		if lineCol+runeCount(s[start:i]) > width && last > start {
			e.sb.WriteString(s[start:last])
			e.sb.WriteByte('\n')
			e.writeIndent(cont)
			start, lineCol = last+1, cont
		}
		last = i
	}
	e.sb.WriteString(s[start:])
}

func foldable(s string, i int) bool {
	if s[i] != ' ' || s[i-1] == ' ' || i+1 >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i+1:])

	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func styleOf(s string) style {
	if strings.ContainsRune(s, '\n') {
		if literalSafe(s) {
			return literalStyle
		}
		return doubleQuotedStyle
	}
	if strings.IndexFunc(s, escaped) >= 0 {
		return doubleQuotedStyle
	}
	if plainSafe(s) {
		return plainStyle
	}

	return singleQuotedStyle
}

// keyText renders a mapping key on a single line.
func keyText(key, path string) (string, error) {
	if !utf8.ValidString(key) {
		return "", &tree.InvalidError{Path: path, Reason: "key is not valid UTF-8"}
	}

	switch {
	case strings.IndexFunc(key, escaped) >= 0:
		return doubleQuote(key), nil
	case plainSafe(key):
		return key, nil
	}

	return singleQuote(key), nil
}

func literalSafe(s string) bool {
	if strings.Trim(s, "\n") == "" {
		return false
	}

	return strings.IndexFunc(s, func(r rune) bool { return r != '\n' && escaped(r) }) < 0
}

// plainSafe reports whether s reads back as the same string when written plain.
func plainSafe(s string) bool {
	switch {
	case s == "":
		return false
	case strings.ContainsRune(indicators, rune(s[0])):
		return false
	case s[0] == ' ' || s[len(s)-1] == ' ':
		return false
	case strings.Contains(s, ": ") || strings.Contains(s, " #") || strings.HasSuffix(s, ":"):
		return false
	case strings.HasPrefix(s, "..."):
		return false
	case s == "<<":
		return false
	case yaml11Bools[s]:
		return false
	}

	n := yaml.Node{Kind: yaml.ScalarNode, Value: s}

	return n.ShortTag() == "!!str"
}

// escaped reports whether r must be written as an escape sequence.
func escaped(r rune) bool {
	switch {
	case r < 0x20 || r == 0x7f:
		return true
	case r >= 0x80 && r <= 0x9f:
		return true
	case r == 0x2028 || r == 0x2029 || r == 0xfeff || r == 0xfffe || r == 0xffff:
		return true
	}

	return false
}

func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func doubleQuote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			switch {
			case r < 0x20 || r == 0x7f:
				fmt.Fprintf(&sb, `\x%02X`, r)
			case escaped(r):
				fmt.Fprintf(&sb, `\u%04X`, r)
			default:
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')

	return sb.String()
}

// formatFloat returns the shortest text that reads back as the same float.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

func formatTime(t time.Time) string {
	if t.Location() == time.UTC && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}

	return t.Format(time.RFC3339Nano)
}

const (
	tagChars = "-#;/?:@&=+$_.~*'()%"
	uriChars = tagChars + ",[]!"
)

// tagText returns the text of a node tag: shorthand tags as they are,
// "tag:" URIs in verbatim form.
func tagText(tag string) (string, error) {
	if strings.HasPrefix(tag, "tag:") {
		if !onlyChars(tag, uriChars) {
			return "", fmt.Errorf("malformed tag %q", tag)
		}
		return "!<" + tag + ">", nil
	}

	if !strings.HasPrefix(tag, "!") {
		return "", fmt.Errorf("malformed tag %q", tag)
	}
	suffix := strings.TrimPrefix(tag[1:], "!")
	if suffix == "" || !onlyChars(suffix, tagChars) {
		return "", fmt.Errorf("malformed tag %q", tag)
	}

	return tag, nil
}

func onlyChars(s, extra string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || strings.IndexByte(extra, c) >= 0 {
			continue
		}
		return false
	}

	return true
}

func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}
