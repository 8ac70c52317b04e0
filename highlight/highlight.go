// Package highlight applies ANSI terminal syntax highlighting to decoded
// payload dumps, the same chroma+lipgloss pipeline used elsewhere in this
// lineage for SQL text.
package highlight

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
)

func init() {
	lexer = lexers.Get("json")
	formatter = formatters.Get("terminal256")
	style = styles.Get("monokai")
}

// Payload returns s — a decoded task/topology/subscription payload, dumped
// as JSON for display — with ANSI terminal syntax highlighting applied. On
// error or empty input, the original string is returned unchanged.
func Payload(s string) string {
	if s == "" {
		return s
	}

	iterator, err := lexer.Tokenise(nil, s)
	if err != nil {
		return s
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return s
	}

	return strings.TrimRight(buf.String(), "\n")
}

var (
	headerRe = regexp.MustCompile(`(?i)^(template|protocol|frame_type|stream_id):`)
	boldStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// Frame returns a decoded frame/transport/SBE header dump with ANSI
// highlighting applied: field labels are bold, hex byte runs are dim.
func Frame(s string) string {
	if s == "" {
		return s
	}

	var hexRun = regexp.MustCompile(`\b[0-9a-fA-F]{2}(?: [0-9a-fA-F]{2})+\b`)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if headerRe.MatchString(line) {
			lines[i] = boldStyle.Render(line)
			continue
		}
		lines[i] = hexRun.ReplaceAllStringFunc(line, func(m string) string {
			return dimStyle.Render(m)
		})
	}

	return strings.Join(lines, "\n")
}
