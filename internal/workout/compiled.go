package workout

// EndCondition is how an interval ends. Value is seconds for time,
// meters for distance and nil for the lap button.
type EndCondition struct {
	Kind  ConditionKind
	Value *float64
}

// Target is an interval's target corridor. Both bounds are nil for
// TargetNone.
type Target struct {
	Kind TargetKind
	Low  *float64
	High *float64
}

// NoTarget is the target of steps without a (resolvable) target.
var NoTarget = Target{Kind: TargetNone}

// CompiledNode is an Interval or a RepeatGroup.
type CompiledNode interface {
	StepOrder() int
	compiled()
}

// Interval is a compiled leaf step.
type Interval struct {
	Order        int
	ChildID      *int // identity of the enclosing repeat group, nil at top level
	Type         StepType
	Description  string
	EndCondition EndCondition
	Target       Target
}

// RepeatGroup is a compiled nested block executed Iterations times.
type RepeatGroup struct {
	Order      int
	ChildID    int
	Iterations int
	Steps      []CompiledNode
}

func (i *Interval) StepOrder() int    { return i.Order }
func (g *RepeatGroup) StepOrder() int { return g.Order }

func (*Interval) compiled()    {}
func (*RepeatGroup) compiled() {}

// Walk visits nodes depth-first in order.
func Walk(nodes []CompiledNode, fn func(CompiledNode)) {
	for _, n := range nodes {
		fn(n)
		if g, ok := n.(*RepeatGroup); ok {
			Walk(g.Steps, fn)
		}
	}
}

func floatPtr(f float64) *float64 { return &f }
