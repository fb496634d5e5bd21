package session

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format names a transcript export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

const timeLayout = "2006-01-02 15:04:05"

// ParseFormat returns the export format named by s. It accepts the format
// names and the md and txt extensions.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatText, "txt":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// Export writes the session to w in the given format. An empty format is
// markdown.
func Export(w io.Writer, s *Session, format Format) error {
	if format == "" {
		format = FormatMarkdown
	}
	format, err := ParseFormat(string(format))
	if err != nil {
		return err
	}
	var data []byte
	switch format {
	case FormatMarkdown:
		data = exportAsMarkdown(s)
	case FormatText:
		data = exportAsText(s)
	case FormatJSON:
		data, err = exportAsJSON(s)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func exportAsJSON(s *Session) ([]byte, error) {
	export := struct {
		ID        string `json:"id"`
		CreatedAt string `json:"created_at"`
		Turns     []Turn `json:"turns"`
	}{
		ID:        s.ID,
		CreatedAt: s.CreatedAt.Format(timeLayout),
		Turns:     s.Turns(),
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func exportAsMarkdown(s *Session) []byte {
	var output strings.Builder

	output.WriteString("# Lighthouse conversation\n\n")
	output.WriteString(fmt.Sprintf("**Started:** %s\n", s.CreatedAt.Format(timeLayout)))
	output.WriteString(fmt.Sprintf("**Turns:** %d\n\n", s.Len()))

	for _, t := range s.turns {
		output.WriteString(fmt.Sprintf("### %s (%s)\n", displayName(t.Author), t.CreatedAt.Format(timeLayout)))
		output.WriteString(t.Body)
		output.WriteString("\n\n---\n\n")
	}
	return []byte(output.String())
}

func exportAsText(s *Session) []byte {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("Started: %s\n", s.CreatedAt.Format(timeLayout)))
	output.WriteString(fmt.Sprintf("Turns: %d\n\n", s.Len()))

	for _, t := range s.turns {
		output.WriteString(fmt.Sprintf("[%s] %s\n", t.CreatedAt.Format("15:04:05"), displayName(t.Author)))
		output.WriteString(t.Body)
		output.WriteString("\n\n")
	}
	return []byte(output.String())
}

func displayName(a Author) string {
	switch a {
	case AuthorAssistant:
		return "3AM Friend"
	case AuthorUser:
		return "You"
	default:
		return string(a)
	}
}
