package xmlcursor

import "encoding/xml"

// Node is one element of a parsed subtree. Children appear in document order.
type Node struct {
	Local string
	Space string
	Attrs []xml.Attr
	Text  string
	Line  int

	Children []*Node
}

func (n *Node) IsNetex() bool {
	return n.Space == NetexNamespace
}

// Attr returns the value of the named attribute, empty when absent.
func (n *Node) Attr(local string) string {
	for _, attr := range n.Attrs {
		if attr.Name.Local == local {
			return attr.Value
		}
	}

	return ""
}

// Child returns the first direct child with the given local name.
func (n *Node) Child(local string) *Node {
	for _, child := range n.Children {
		if child.Local == local {
			return child
		}
	}

	return nil
}

// ChildrenNamed returns every direct child with the given local name.
func (n *Node) ChildrenNamed(local string) []*Node {
	var matched []*Node
	for _, child := range n.Children {
		if child.Local == local {
			matched = append(matched, child)
		}
	}

	return matched
}

// Find walks the given path of local names from this node, returning nil as
// soon as a step is missing.
func (n *Node) Find(path ...string) *Node {
	current := n
	for _, step := range path {
		current = current.Child(step)
		if current == nil {
			return nil
		}
	}

	return current
}

// FindAll returns every node at the given path; all steps but the last
// resolve to their first match.
func (n *Node) FindAll(path ...string) []*Node {
	if len(path) == 0 {
		return nil
	}

	parent := n
	if len(path) > 1 {
		parent = n.Find(path[:len(path)-1]...)
		if parent == nil {
			return nil
		}
	}

	return parent.ChildrenNamed(path[len(path)-1])
}

// ChildText returns the trimmed text of the named direct child.
func (n *Node) ChildText(local string) string {
	child := n.Child(local)
	if child == nil {
		return ""
	}

	return child.Text
}

// Release drops the subtree below this node so it can be collected while the
// rest of the document is still streaming.
func (n *Node) Release() {
	n.Children = nil
	n.Text = ""
}
