package vapor

import "github.com/vapor-ui/vapor/internal/vtree"

// Node is the value a commit point (End, Children, StyleChildren) returns:
// a handle to the node just closed. It is not itself a child value: parent
// builders take Builders as children, and a Node only exposes the committed
// node's ID.
type Node struct {
	id vtree.ID
}

// ID exposes the underlying stable node identity, for callers that need to
// correlate a Node with engine-level diagnostics or test assertions.
func (n Node) ID() vtree.ID { return n.id }

// RenderRoot is the signature a page's top-level builder function has:
// called once per pass with no arguments, it issues the builder calls that
// describe that page's current tree.
type RenderRoot func()

// LayoutRoot is a RenderRoot that additionally receives a function to
// render whatever the active route's page contributes, so a layout can
// place the page's content within chrome (navigation, sidebars) it
// controls.
type LayoutRoot func(renderPage func())
