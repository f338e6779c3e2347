package ui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/msgboard/msgboard/internal/backend"
)

var (
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern     = regexp.MustCompile(`(^|[^*\w])\*([^*\s][^*]*)\*`)
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// messageIndent is the width of the "• " bullet before each message
const messageIndent = 2

// highlightCode applies syntax highlighting to a fenced code block
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// renderInlineMarkdown applies inline formatting (bold, italic, code, links) to a line
func renderInlineMarkdown(line string) string {
	// Protect code spans from the other patterns
	var spans []string
	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		code := inlineCodePattern.FindStringSubmatch(match)[1]
		spans = append(spans, MarkdownInlineCodeStyle.Render(code))
		return fmt.Sprintf("\x00CODE%d\x00", len(spans)-1)
	})

	line = boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		return MarkdownBoldStyle.Render(boldPattern.FindStringSubmatch(match)[1])
	})

	line = italicPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := italicPattern.FindStringSubmatch(match)
		return parts[1] + MarkdownItalicStyle.Render(parts[2])
	})

	line = linkPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		return MarkdownLinkStyle.Render(parts[1]) + " (" + MarkdownLinkStyle.Render(parts[2]) + ")"
	})

	for i, rendered := range spans {
		line = strings.Replace(line, fmt.Sprintf("\x00CODE%d\x00", i), rendered, 1)
	}
	return line
}

// wrapText wraps text to the specified width, handling ANSI escape codes
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// renderContent renders message content: fenced code blocks are
// highlighted, everything else gets inline markdown and wrapping.
func renderContent(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var out []string
	var code strings.Builder
	inCode := false
	lang := ""

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if !inCode {
				inCode = true
				lang = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
				code.Reset()
				continue
			}
			inCode = false
			out = append(out, highlightCode(code.String(), lang))
			continue
		}

		if inCode {
			if code.Len() > 0 {
				code.WriteString("\n")
			}
			code.WriteString(line)
			continue
		}
		out = append(out, wrapText(MessageTextStyle.Render(renderInlineMarkdown(line)), width))
	}

	// Unterminated fence: show what we have
	if inCode {
		out = append(out, highlightCode(code.String(), lang))
	}

	return strings.Join(out, "\n")
}

// RenderMessage renders one message as a bulleted, wrapped block
func RenderMessage(msg backend.Message, width int) string {
	body := renderContent(msg.Content, width-messageIndent)
	lines := strings.Split(body, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = MessageBulletStyle.Render("•") + " " + lines[i]
		} else {
			lines[i] = strings.Repeat(" ", messageIndent) + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// RenderMessages renders the whole list, or a placeholder when it is empty
func RenderMessages(msgs []backend.Message, width int) string {
	if len(msgs) == 0 {
		return EmptyBoardStyle.Render("No messages yet. Say hello!")
	}
	blocks := make([]string, len(msgs))
	for i, msg := range msgs {
		blocks[i] = RenderMessage(msg, width)
	}
	return strings.Join(blocks, "\n")
}

// GraphemeCount returns the number of user-perceived characters in s
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
