package markdown

import (
	"testing"

	"github.com/vapor-ui/vapor/internal/vtree"
)

func TestParseHeadingAndParagraph(t *testing.T) {
	blocks := Parse("# Title\n\nBody text.\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].Kind != vtree.KindText || blocks[0].Text != "Title" {
		t.Fatalf("expected heading text %q, got %+v", "Title", blocks[0])
	}
	if blocks[1].Text != "Body text." {
		t.Fatalf("expected paragraph text, got %+v", blocks[1])
	}
}

func TestParseBulletListGroupsConsecutiveItems(t *testing.T) {
	blocks := Parse("- one\n- two\n- three\n")
	if len(blocks) != 1 || blocks[0].Kind != vtree.KindList {
		t.Fatalf("expected a single list block, got %+v", blocks)
	}
	if len(blocks[0].Items) != 3 || blocks[0].Items[1].Text != "two" {
		t.Fatalf("expected 3 items with 'two' second, got %+v", blocks[0].Items)
	}
}

func TestParseLink(t *testing.T) {
	blocks := Parse("[docs](https://example.com)")
	if len(blocks) != 1 || blocks[0].Kind != vtree.KindLink {
		t.Fatalf("expected a link block, got %+v", blocks)
	}
	if blocks[0].Text != "docs" || blocks[0].Href != "https://example.com" {
		t.Fatalf("unexpected link block: %+v", blocks[0])
	}
}

func TestParseSeparatesBlocksOnBlankLines(t *testing.T) {
	blocks := Parse("- a\n- b\n\nnot a list item")
	if len(blocks) != 2 {
		t.Fatalf("expected list then paragraph, got %+v", blocks)
	}
	if blocks[0].Kind != vtree.KindList || blocks[1].Kind != vtree.KindText {
		t.Fatalf("unexpected block kinds: %+v", blocks)
	}
}
