package api

import (
	"regexp"
	"strings"
)

// transcriptPattern matches the first delimited transcript segment. The
// segment may span lines.
var transcriptPattern = regexp.MustCompile(`(?s)<transcript>(.*?)</transcript>`)

// ExtractTranscript removes the first <transcript>...</transcript> segment from
// text and returns the remaining display text together with the trimmed
// transcript. Text without a complete tag pair is returned unchanged with an
// empty transcript.
func ExtractTranscript(text string) (clean, transcript string) {
	loc := transcriptPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, ""
	}
	transcript = strings.TrimSpace(text[loc[2]:loc[3]])
	clean = strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	return clean, transcript
}
