package tree

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/YuminosukeSato/id3tree/core/model"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/pkg/log"
)

// Render writes a human readable view of the tree. The first line describes
// the root; every other line is a branch "attribute = value" followed by the
// node it leads to:
//
//	root [Outlook] samples=14 entropy=0.940 gain=0.247
//	├─ Outlook = Sunny [Humidity] samples=5 entropy=0.971 gain=0.971
//	│  ├─ Humidity = High -> class: No (samples=3)
//	│  └─ Humidity = Normal -> class: Yes (samples=2)
//	└─ Outlook = Overcast -> class: Yes (samples=4)
func (c *ID3Classifier) Render(w io.Writer) error {
	if err := c.state.RequireFitted(modelName, "Render"); err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString("root")
	sb.WriteString(describe(c.root))
	sb.WriteByte('\n')
	renderChildren(&sb, c.root, "")
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "writing tree")
}

// String returns the rendered tree, or a placeholder before Fit.
func (c *ID3Classifier) String() string {
	var sb strings.Builder
	if err := c.Render(&sb); err != nil {
		return fmt.Sprintf("%s(unfitted)", modelName)
	}
	return sb.String()
}

func renderChildren(sb *strings.Builder, n *Node, prefix string) {
	for i, v := range n.Values {
		child := n.Children[v]
		last := i == len(n.Values)-1
		marker, indent := "├─ ", "│  "
		if last {
			marker, indent = "└─ ", "   "
		}
		fmt.Fprintf(sb, "%s%s%s = %s%s\n", prefix, marker, n.Attribute, v, describe(child))
		renderChildren(sb, child, prefix+indent)
	}
}

func describe(n *Node) string {
	if n.Leaf {
		return fmt.Sprintf(" -> class: %s (samples=%d)", n.Class, n.Samples)
	}
	return fmt.Sprintf(" [%s] samples=%d entropy=%.3f gain=%.3f", n.Attribute, n.Samples, n.Entropy, n.Gain)
}

type jsonNode struct {
	Leaf        bool           `json:"leaf"`
	Class       string         `json:"class"`
	Attribute   string         `json:"attribute,omitempty"`
	Samples     int            `json:"samples"`
	Entropy     float64        `json:"entropy"`
	Gain        float64        `json:"gain,omitempty"`
	ClassCounts map[string]int `json:"class_counts"`
	Branches    []jsonBranch   `json:"branches,omitempty"`
}

type jsonBranch struct {
	Value string    `json:"value"`
	Node  *jsonNode `json:"node"`
}

// TreeDocument is the JSON form of a fitted tree.
type TreeDocument struct {
	Model      string    `json:"model"`
	ID         string    `json:"id"`
	Attributes []string  `json:"attributes"`
	Classes    []string  `json:"classes"`
	Depth      int       `json:"depth"`
	Nodes      int       `json:"nodes"`
	Leaves     int       `json:"leaves"`
	Root       *jsonNode `json:"root"`
}

// Document returns the JSON-serializable form of the fitted tree.
func (c *ID3Classifier) Document() (*TreeDocument, error) {
	if err := c.state.RequireFitted(modelName, "Document"); err != nil {
		return nil, err
	}
	return &TreeDocument{
		Model:      modelName,
		ID:         c.id,
		Attributes: c.Attributes(),
		Classes:    c.Classes(),
		Depth:      c.root.Depth(),
		Nodes:      c.root.NodeCount(),
		Leaves:     c.root.LeafCount(),
		Root:       toJSON(c.root),
	}, nil
}

// ExportJSON writes the fitted tree as indented JSON. Branches keep the order
// in which their values first occurred in training.
func (c *ID3Classifier) ExportJSON(w io.Writer) error {
	doc, err := c.Document()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(doc), "encoding tree")
}

func toJSON(n *Node) *jsonNode {
	out := &jsonNode{
		Leaf:        n.Leaf,
		Class:       n.Class,
		Attribute:   n.Attribute,
		Samples:     n.Samples,
		Entropy:     n.Entropy,
		Gain:        n.Gain,
		ClassCounts: n.ClassCounts,
	}
	for _, v := range n.Values {
		out.Branches = append(out.Branches, jsonBranch{Value: v, Node: toJSON(n.Children[v])})
	}
	return out
}

// classifierSnapshot is the gob form of a fitted ID3Classifier.
type classifierSnapshot struct {
	ID             string
	AttributeReuse bool
	NJobs          int
	Root           *Node
	Attributes     []string
	Classes        []string
	State          model.ModelState
}

// GobEncode implements gob.GobEncoder so that model.SaveModel can persist a
// fitted classifier.
func (c *ID3Classifier) GobEncode() ([]byte, error) {
	if err := c.state.RequireFitted(modelName, "GobEncode"); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(classifierSnapshot{
		ID:             c.id,
		AttributeReuse: c.attributeReuse,
		NJobs:          c.nJobs,
		Root:           c.root,
		Attributes:     c.attributes,
		Classes:        c.classes,
		State:          c.state.GetState(),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder. It restores a classifier written by
// GobEncode, including into a zero ID3Classifier.
func (c *ID3Classifier) GobDecode(data []byte) error {
	var snap classifierSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return err
	}
	if snap.Root == nil {
		return errors.NewModelError("GobDecode", "missing tree", nil)
	}
	if c.state == nil {
		c.state = model.NewStateManager()
	}
	c.id = snap.ID
	c.attributeReuse = snap.AttributeReuse
	c.nJobs = snap.NJobs
	c.root = snap.Root
	c.attributes = snap.Attributes
	c.classes = snap.Classes
	c.state.SetState(snap.State)
	c.attachLogger()
	c.logger.Debug("Model restored", log.OperationKey, log.OperationLoad, log.NodesKey, c.root.NodeCount())
	return nil
}
