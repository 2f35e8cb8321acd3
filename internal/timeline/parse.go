package timeline

import (
	"strings"
	"unicode"
)

const blockSeparator = "\n\n"

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Parse converts biography text into timeline events in source order.
// Malformed blocks are silently skipped and an empty input yields an empty,
// non-nil slice.
func Parse(text string) []Event {
	return Analyze(text).Events
}

// Analyze runs the same parse as Parse and also reports how many blocks were
// seen and how many of them were dropped.
func Analyze(text string) Report {
	report := Report{Events: []Event{}}

	normalized := trim(newlineReplacer.Replace(text))
	if normalized == "" {
		return report
	}

	for _, raw := range strings.Split(normalized, blockSeparator) {
		block := trim(raw)
		if block == "" {
			continue
		}
		report.Blocks++

		evt, ok := parseBlock(block)
		if !ok {
			report.Dropped++
			continue
		}
		report.Events = append(report.Events, evt)
	}
	return report
}

func parseBlock(block string) (Event, bool) {
	lines := trimBlankEdges(strings.Split(block, "\n"))
	if len(lines) == 0 {
		return Event{}, false
	}

	date, title, ok := parseHeader(lines[0])
	if !ok {
		return Event{}, false
	}

	return Event{
		Date:  date,
		Title: title,
		Text:  trim(strings.Join(lines[1:], "\n")),
	}, true
}

// parseHeader splits "[date] title". Both parts must be non-empty.
func parseHeader(line string) (string, string, bool) {
	s := trim(line)
	if !strings.HasPrefix(s, "[") {
		return "", "", false
	}
	closeIdx := strings.IndexByte(s, ']')
	if closeIdx < 0 {
		return "", "", false
	}

	date := trim(s[1:closeIdx])
	title := trim(s[closeIdx+1:])
	if date == "" || title == "" {
		return "", "", false
	}
	return date, title, true
}

func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && trim(lines[start]) == "" {
		start++
	}
	for end > start && trim(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// trim strips Unicode whitespace plus the byte order mark, which shows up
// when bios are pasted from word processors.
func trim(s string) string {
	return strings.TrimFunc(s, isBlank)
}

func isBlank(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
