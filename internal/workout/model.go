// Package workout compiles authored workout definitions into the step
// hierarchy and training-load metrics expected by the remote workout
// service.
package workout

// Step is a leaf of an authored workout: one interval.
type Step struct {
	Duration    string `yaml:"duration,omitempty" json:"duration,omitempty"`
	Power       string `yaml:"power,omitempty" json:"power,omitempty"`
	Target      string `yaml:"target,omitempty" json:"target,omitempty"`
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Node is one element of a step tree: either a leaf Step or a nested
// block that is compiled into a repeat group.
type Node struct {
	Step  *Step
	Block Tree
}

// Tree is an ordered sequence of nodes.
type Tree []Node

// Leaf wraps a step into a node.
func Leaf(s Step) Node { return Node{Step: &s} }

// Block wraps a nested sequence into a node.
func Block(nodes ...Node) Node {
	if nodes == nil {
		nodes = Tree{}
	}
	return Node{Block: nodes}
}

// IsLeaf reports whether n is a leaf step.
func (n Node) IsLeaf() bool { return n.Step != nil }

// Equal compares two nodes structurally, recursing into nested blocks.
func (n Node) Equal(o Node) bool {
	if n.IsLeaf() != o.IsLeaf() {
		return false
	}
	if n.IsLeaf() {
		return *n.Step == *o.Step
	}
	return n.Block.Equal(o.Block)
}

// Equal compares two trees element by element.
func (t Tree) Equal(o Tree) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if !t[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Flatten returns the leaves of t in order, ignoring grouping.
func (t Tree) Flatten() []Step {
	var out []Step
	for _, n := range t {
		if n.IsLeaf() {
			out = append(out, *n.Step)
			continue
		}
		out = append(out, n.Block.Flatten()...)
	}
	return out
}

// Zone is a named target range. Min and Max use the same textual units
// as step targets: clock strings per km for kind "pace", plain numbers
// otherwise.
type Zone struct {
	Kind string `yaml:"type" json:"type"`
	Min  string `yaml:"min" json:"min"`
	Max  string `yaml:"max" json:"max"`
}

// ZoneTable maps zone names to their definitions.
type ZoneTable map[string]Zone

// Definition is one authored workout.
type Definition struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       Tree   `yaml:"steps" json:"steps"`
}

// RemoteIdentity identifies an existing workout on the remote service.
// It is only ever obtained from the service, never generated locally.
type RemoteIdentity struct {
	ID      int64
	OwnerID int64
}
