package workout

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a mapping into a leaf and a sequence into a
// nested block.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var s Step
		if err := value.Decode(&s); err != nil {
			return fmt.Errorf("line %d: decoding step: %w", value.Line, err)
		}
		*n = Node{Step: &s}
	case yaml.SequenceNode:
		var t Tree
		if err := value.Decode(&t); err != nil {
			return err
		}
		if t == nil {
			t = Tree{}
		}
		*n = Node{Block: t}
	default:
		return fmt.Errorf("line %d: step must be a mapping or a list", value.Line)
	}
	return nil
}

// MarshalYAML mirrors UnmarshalYAML.
func (n Node) MarshalYAML() (any, error) {
	if n.IsLeaf() {
		return n.Step, nil
	}
	return []Node(n.Block), nil
}

// MarshalJSON renders leaves as objects and blocks as arrays.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.IsLeaf() {
		return json.Marshal(n.Step)
	}
	if n.Block == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Node(n.Block))
}

// UnmarshalJSON mirrors MarshalJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '[':
			t := Tree{}
			if err := json.Unmarshal(data, &t); err != nil {
				return err
			}
			*n = Node{Block: t}
			return nil
		case '{':
			var s Step
			if err := json.Unmarshal(data, &s); err != nil {
				return err
			}
			*n = Node{Step: &s}
			return nil
		}
	}
	return fmt.Errorf("step must be an object or an array")
}
