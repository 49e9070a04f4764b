package markdown

import (
	"github.com/vapor-ui/vapor"
	"github.com/vapor-ui/vapor/internal/vtree"
)

// Render parses src and returns a Builder that, once committed (End or
// Children), produces one child per top-level block: a Text node for
// paragraphs and headings, a Link node for "[text](href)" lines, and a
// List node (with one Text or Link child per item) for "- " bullet groups.
func Render(src string) vapor.Builder {
	return RenderBlocks(Parse(src))
}

// RenderBlocks builds directly from an already-parsed block list, for
// callers that want to post-process Parse's output before rendering.
func RenderBlocks(blocks []Block) vapor.Builder {
	children := make([]vapor.Builder, 0, len(blocks))
	for _, b := range blocks {
		children = append(children, buildBlock(b))
	}
	return vapor.Container(children...)
}

func buildBlock(b Block) vapor.Builder {
	switch b.Kind {
	case vtree.KindLink:
		return vapor.Link(b.Text, b.Href)
	case vtree.KindList:
		items := make([]vapor.Builder, 0, len(b.Items))
		for _, it := range b.Items {
			items = append(items, buildBlock(it))
		}
		return vapor.List(items...)
	default:
		return vapor.Text(b.Text)
	}
}
