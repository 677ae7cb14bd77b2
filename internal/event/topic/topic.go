// Package topic names bus channels as dot-separated paths such as
// "pointer.window.move" and matches them against wildcard patterns.
package topic

import "strings"

// Topic is a dot-separated channel name. Patterns may use "*" for exactly
// one segment and "**" for any number of segments, including none.
type Topic string

const (
	sep  = "."
	any1 = "*"
	anyN = "**"
)

func (t Topic) String() string { return string(t) }

// Segments splits t on dots. The empty topic has no segments.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), sep)
}

// Child appends one segment: Topic("pointer").Child("window") is
// "pointer.window".
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return t + sep + Topic(segment)
}

// IsValid rejects the empty topic and topics with empty segments.
func (t Topic) IsValid() bool {
	return t != "" && !strings.Contains(string(t), sep+sep) &&
		!strings.HasPrefix(string(t), sep) && !strings.HasSuffix(string(t), sep)
}

// Matches reports whether t is selected by pattern.
func (t Topic) Matches(pattern Topic) bool {
	if !strings.Contains(string(pattern), any1) {
		return t == pattern
	}
	return match(t.Segments(), pattern.Segments())
}

func match(name, pattern []string) bool {
	for len(pattern) > 0 {
		head := pattern[0]
		pattern = pattern[1:]

		if head == anyN {
			for i := 0; i <= len(name); i++ {
				if match(name[i:], pattern) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 || (head != any1 && head != name[0]) {
			return false
		}
		name = name[1:]
	}
	return len(name) == 0
}
