package header

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/penwyp/cydconf/internal/util"
)

// Define is a single preprocessor macro or scalar constant
type Define struct {
	Name    string
	Value   string // raw text, "" for flag macros
	Comment string
	Line    int
}

// Array is a constant string array such as a recipient list
type Array struct {
	Name     string
	Values   []string
	Comments []string
	Line     int
}

// Header is the parsed content of a C configuration header
type Header struct {
	Path    string
	Defines map[string]Define
	Arrays  map[string]Array
	order   []string
}

var (
	definePattern = regexp.MustCompile(`^#\s*define\s+([A-Za-z_][A-Za-z0-9_]*)(\(?)\s*(.*)$`)
	constPattern  = regexp.MustCompile(`^(?:static\s+)?const\s+[A-Za-z_][\w\s]*?\s+([A-Za-z_]\w*)\s*=\s*([^;]+);\s*(.*)$`)
	arrayPattern  = regexp.MustCompile(`^(?:static\s+)?const\s+char\s*\*\s*(?:const\s+)?([A-Za-z_]\w*)\s*\[\s*\w*\s*\]\s*=\s*\{(.*)$`)
	stringPattern = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)
)

// ParseFile parses the header at path
func ParseFile(path string) (*Header, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	h, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	h.Path = path
	return h, nil
}

// Parse reads #define macros, scalar constants and string arrays. Other
// preprocessor directives and declarations are ignored.
func Parse(r io.Reader) (*Header, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	h := &Header{
		Defines: make(map[string]Define),
		Arrays:  make(map[string]Array),
	}

	scanner := bufio.NewScanner(strings.NewReader(stripBlockComments(string(data))))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		lineNo  int
		current *Array
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if current != nil {
			done := current.collect(line)
			if done {
				h.addArray(*current)
				current = nil
			}
			continue
		}

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if m := definePattern.FindStringSubmatch(line); m != nil {
			if m[2] == "(" {
				util.LogDebugf("Skip function-like macro %s at line %d", m[1], lineNo)
				continue
			}
			value, comment := splitComment(m[3])
			h.addDefine(Define{Name: m[1], Value: value, Comment: comment, Line: lineNo})
			continue
		}

		if m := arrayPattern.FindStringSubmatch(line); m != nil {
			arr := &Array{Name: m[1], Line: lineNo}
			if arr.collect(m[2]) {
				h.addArray(*arr)
			} else {
				current = arr
			}
			continue
		}

		if m := constPattern.FindStringSubmatch(line); m != nil {
			_, comment := splitComment(m[3])
			h.addDefine(Define{Name: m[1], Value: strings.TrimSpace(m[2]), Comment: comment, Line: lineNo})
			continue
		}

		if !strings.HasPrefix(line, "#") {
			util.LogDebugf("Skip unrecognized line %d: %s", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current != nil {
		return nil, fmt.Errorf("%w: array %s starting at line %d", ErrUnterminatedArray, current.Name, current.Line)
	}

	util.LogDebugf("Parsed header: %d defines, %d arrays", len(h.Defines), len(h.Arrays))
	return h, nil
}

// collect consumes one line of array body and reports whether the closing
// brace was reached
func (a *Array) collect(line string) bool {
	body, comment := splitComment(line)
	done := false
	if idx := strings.Index(body, "}"); idx >= 0 {
		body = body[:idx]
		done = true
	}

	matches := stringPattern.FindAllStringSubmatch(body, -1)
	for i, m := range matches {
		a.Values = append(a.Values, unescape(m[1]))
		// A trailing comment labels the last element on its line
		if i == len(matches)-1 {
			a.Comments = append(a.Comments, comment)
		} else {
			a.Comments = append(a.Comments, "")
		}
	}
	return done
}

func (h *Header) addDefine(d Define) {
	if _, exists := h.Defines[d.Name]; !exists {
		h.order = append(h.order, d.Name)
	}
	h.Defines[d.Name] = d
}

func (h *Header) addArray(a Array) {
	h.Arrays[a.Name] = a
}

// Names returns define names in the order they first appeared
func (h *Header) Names() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// Has reports whether name is defined
func (h *Header) Has(name string) bool {
	_, ok := h.Defines[name]
	return ok
}

// Lookup returns the define called name
func (h *Header) Lookup(name string) (Define, bool) {
	d, ok := h.Defines[name]
	return d, ok
}

// splitComment separates a trailing // comment that is not inside a string
func splitComment(s string) (string, string) {
	inString := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if inString {
				i++
			}
		case '"':
			inString = !inString
		case '/':
			if !inString && i+1 < len(s) && s[i+1] == '/' {
				return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+2:])
			}
		}
	}
	return strings.TrimSpace(s), ""
}

// stripBlockComments removes /* */ comments, keeping newlines so line
// numbers stay accurate
func stripBlockComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inBlock, inString, inLine := false, false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inBlock:
			if c == '*' && i+1 < len(s) && s[i+1] == '/' {
				inBlock = false
				i++
			} else if c == '\n' {
				b.WriteByte('\n')
			}
		case inLine:
			b.WriteByte(c)
			if c == '\n' {
				inLine = false
			}
		case inString:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			} else if c == '"' || c == '\n' {
				inString = false
			}
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			inBlock = true
			i++
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			inLine = true
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func unescape(s string) string {
	r := strings.NewReplacer(`\"`, `"`, `\\`, `\`, `\n`, "\n", `\r`, "\r", `\t`, "\t")
	return r.Replace(s)
}
