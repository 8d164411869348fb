package util

import (
	"strings"
	"unicode"
)

func SanitizePostgresText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}

// NormalizeExtractedText sanitizes text pulled out of a document, turns
// runs of blank lines into a single empty line and trims every line.
func NormalizeExtractedText(value string) string {
	value = SanitizePostgresText(value)
	value = strings.ReplaceAll(value, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(value))
	blank := 0
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if strings.TrimSpace(line) == "" {
			blank++
			continue
		}
		if b.Len() > 0 {
			if blank > 0 {
				b.WriteString("\n\n")
			} else {
				b.WriteByte('\n')
			}
		}
		blank = 0
		b.WriteString(line)
	}
	return b.String()
}

// OptionalString trims value and returns nil when nothing remains.
func OptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
