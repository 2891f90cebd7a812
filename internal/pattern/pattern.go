// Package pattern parses the process-pattern list read from stdin.
package pattern

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Error reports a pattern line that failed to compile.
type Error struct {
	Line   int
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid pattern %q on line %d: %v", e.Source, e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Pattern is one compiled entry from the pattern list.
type Pattern struct {
	Source string
	Line   int
	re     *regexp.Regexp
}

// Set holds compiled patterns in input order.
type Set []Pattern

// Parse reads one pattern per line. Everything from the first unescaped '#'
// to end of line is a comment; lines that are empty after stripping and
// trimming are skipped. Remaining text compiles as a case-insensitive
// regular expression. An empty Set is valid and matches nothing.
func Parse(r io.Reader) (Set, error) {
	var set Set
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := stripComment(scanner.Text())
		if text == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + text)
		if err != nil {
			return nil, &Error{Line: line, Source: text, Err: err}
		}
		set = append(set, Pattern{Source: text, Line: line, re: re})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pattern list: %w", err)
	}
	return set, nil
}

func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		// A backslash-escaped '#' stays in the pattern; the regexp engine
		// treats \# as a literal hash.
		if line[i] == '#' && (i == 0 || line[i-1] != '\\') {
			line = line[:i]
			break
		}
	}
	return strings.TrimSpace(line)
}

// Match reports whether any pattern finds an unanchored match in subject.
func (s Set) Match(subject string) bool {
	for _, p := range s {
		if p.re.MatchString(subject) {
			return true
		}
	}
	return false
}
