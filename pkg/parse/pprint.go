package parse

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const indentInc = 2

// PPrint writes an indented dump of the tree rooted at n, one node per line.
// Nodes with children are written as an opening and a closing tag:
//
//	<IF line 3>
//	  <EQ>
//	    <VARIABLE i />
//	    <VARIABLE j />
//	  </EQ>
//	  ...
//	</IF>
func PPrint(w io.Writer, n *Node) {
	pprintRec(w, n, 0)
}

func pprintRec(w io.Writer, n *Node, indent int) {
	head := summary(n)
	if len(n.Children) == 0 {
		fmt.Fprintf(w, "%*s<%s />\n", indent, "", head)
		return
	}
	fmt.Fprintf(w, "%*s<%s>\n", indent, "", head)
	for _, ch := range n.Children {
		pprintRec(w, ch, indent+indentInc)
	}
	fmt.Fprintf(w, "%*s</%s>\n", indent, "", n.Kind)
}

func summary(n *Node) string {
	var sb strings.Builder
	sb.WriteString(n.Kind.String())
	switch {
	case n.Kind == PROGRAM || n.Kind == VARIABLE:
		sb.WriteString(" " + n.Text)
	case n.Value.IsValid():
		sb.WriteString(" " + n.Value.Repr())
	}
	if n.Kind.IsStatement() || n.Kind == TEST {
		fmt.Fprintf(&sb, " line %d", n.Line)
	}
	if n.Descending {
		sb.WriteString(" downto")
	}
	return sb.String()
}

// Structured form of a node used by MarshalJSON and MarshalYAML.
type nodeDump struct {
	Kind       string  `json:"kind" yaml:"kind"`
	Line       int     `json:"line" yaml:"line"`
	Text       string  `json:"text,omitempty" yaml:"text,omitempty"`
	Value      any     `json:"value,omitempty" yaml:"value,omitempty"`
	Descending bool    `json:"descending,omitempty" yaml:"descending,omitempty"`
	Children   []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n *Node) dump() nodeDump {
	return nodeDump{
		Kind:       n.Kind.String(),
		Line:       n.Line,
		Text:       n.Text,
		Value:      n.Value.Native(),
		Descending: n.Descending,
		Children:   n.Children,
	}
}

// MarshalJSON encodes the node and its descendants as a JSON object.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.dump())
}

// MarshalYAML implements yaml.Marshaler, encoding the node the same way as
// MarshalJSON.
func (n *Node) MarshalYAML() (any, error) {
	return n.dump(), nil
}
