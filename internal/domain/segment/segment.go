// Package segment splits a solution file into its leading description,
// code body and trailing complexity notes using a single comment marker.
package segment

import (
	"strings"
	"unicode"
)

// DefaultMarker is the comment marker used when none is configured.
const DefaultMarker = "#"

// Document is the three-way split of a source file.
type Document struct {
	Description string
	Code        string
	Complexity  string
}

// SegmentText splits text into lines and segments them with marker.
func SegmentText(text, marker string) Document {
	return Segment(SplitLines(text), marker)
}

// SplitLines breaks text into lines at "\n", "\r\n" or a lone "\r". A
// final line terminator does not produce an extra empty line. Other
// separators such as form feed or U+2028 stay inside their line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Segment splits lines into description, code and complexity.
//
// Marker lines before the first code line form the description. The code is
// the verbatim span from the first to the last non-blank, non-marker line.
// Marker lines after that span form the complexity notes; any other
// non-blank lines after it are dropped.
func Segment(lines []string, marker string) Document {
	if marker == "" {
		marker = DefaultMarker
	}

	var description, complexity []string
	first := -1
	for i, line := range lines {
		trimmed := trimLeft(line)
		if strings.HasPrefix(trimmed, marker) {
			description = append(description, stripMarker(trimmed, marker))
			continue
		}
		if trimmed != "" {
			first = i
			break
		}
	}
	if first == -1 {
		return Document{Description: strings.Join(description, "\n")}
	}

	last := first
	for i := first + 1; i < len(lines); i++ {
		if isCode(lines[i], marker) {
			last = i
		}
	}

	for _, line := range lines[last+1:] {
		trimmed := trimLeft(line)
		if strings.HasPrefix(trimmed, marker) {
			complexity = append(complexity, stripMarker(trimmed, marker))
		}
	}

	return Document{
		Description: strings.Join(description, "\n"),
		Code:        strings.Join(lines[first:last+1], "\n"),
		Complexity:  strings.Join(complexity, "\n"),
	}
}

func isCode(line, marker string) bool {
	trimmed := trimLeft(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, marker)
}

// stripMarker removes the marker and at most one following space.
func stripMarker(trimmed, marker string) string {
	return strings.TrimPrefix(strings.TrimPrefix(trimmed, marker), " ")
}

func trimLeft(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}
