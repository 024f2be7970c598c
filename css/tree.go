// Package css holds the evaluated CSS tree model and the renderer that
// serializes it to output text. The tree is produced by an earlier
// evaluation stage (or by Parser for plain CSS) and is read-only here:
// rendering never mutates a node.
package css

// Node is a node in an evaluated CSS tree. The set of implementations is
// closed: *Stylesheet, *Comment, *AtRule, *MediaRule, *StyleRule and
// *Declaration.
type Node interface {
	node()
}

// Stylesheet is the root of a CSS tree: an ordered sequence of top-level
// nodes.
type Stylesheet struct {
	Children []Node
}

// Comment is a comment emitted verbatim.
type Comment struct {
	Text string
}

// AtRule is a generic at-rule: "@name value;" or "@name value { ... }".
// HasBlock distinguishes an empty block from no block at all.
type AtRule struct {
	Name     string
	Value    string
	HasBlock bool
	Block    []Node
}

// MediaQuery is one query of a media rule. Features hold complete feature
// clauses as text, parentheses included ("(min-width: 600px)").
type MediaQuery struct {
	Modifier string
	Type     string
	Features []string
}

// MediaRule is "@media <queries> { ... }".
type MediaRule struct {
	Queries []MediaQuery
	Block   []Node
}

// StyleRule is a style rule whose selector has already been rendered to its
// final text by the selector layer.
type StyleRule struct {
	Selector string
	Block    []Node
}

// Declaration is "name: value;".
type Declaration struct {
	Name  string
	Value Value
}

func (*Stylesheet) node()  {}
func (*Comment) node()     {}
func (*AtRule) node()      {}
func (*MediaRule) node()   {}
func (*StyleRule) node()   {}
func (*Declaration) node() {}
