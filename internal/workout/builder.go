package workout

// counters is threaded through the recursive build. order is shared by
// every node in the tree; identity advances once per repeat block.
type counters struct {
	order    int
	identity int
}

// run is a sequence of consecutive structurally equal siblings.
type run struct {
	count int
	node  Node
}

// collapse run-length encodes t, preserving order.
func collapse(t Tree) []run {
	var runs []run
	for _, n := range t {
		if last := len(runs) - 1; last >= 0 && runs[last].node.Equal(n) {
			runs[last].count++
			continue
		}
		runs = append(runs, run{count: 1, node: n})
	}
	return runs
}

// BuildSteps compiles t into the ordered step hierarchy. Any malformed
// quantity aborts the whole build.
func BuildSteps(t Tree, d Discipline) ([]CompiledNode, error) {
	nodes, _, err := buildSteps(t, d, counters{}, nil)
	return nodes, err
}

// buildSteps compiles one nesting level. enclosing is the identity of the
// repeat block being compiled, nil at the top level.
func buildSteps(t Tree, d Discipline, c counters, enclosing *int) ([]CompiledNode, counters, error) {
	if len(t) == 0 {
		return []CompiledNode{}, c, nil
	}

	nodes := make([]CompiledNode, 0, len(t))
	for _, r := range collapse(t) {
		c.order++

		if !r.node.IsLeaf() {
			c.identity++
			group := &RepeatGroup{
				Order:      c.order,
				ChildID:    c.identity,
				Iterations: r.count,
			}
			id := c.identity

			children, next, err := buildSteps(r.node.Block, d, c, &id)
			if err != nil {
				return nil, c, err
			}
			c = next
			group.Steps = children
			nodes = append(nodes, group)
			continue
		}

		iv, err := buildInterval(*r.node.Step, d, c.order, enclosing)
		if err != nil {
			return nil, c, err
		}
		// A run of equal leaves becomes a single-step repeat group rather
		// than one interval, so the repeat count is not lost. The group
		// takes its own order and identity.
		if r.count > 1 {
			c.identity++
			id := c.identity
			c.order++
			iv.Order = c.order
			iv.ChildID = &id
			nodes = append(nodes, &RepeatGroup{
				Order:      c.order - 1,
				ChildID:    id,
				Iterations: r.count,
				Steps:      []CompiledNode{iv},
			})
			continue
		}
		nodes = append(nodes, iv)
	}
	return nodes, c, nil
}

func buildInterval(s Step, d Discipline, order int, enclosing *int) (*Interval, error) {
	end, err := d.ResolveEndCondition(s)
	if err != nil {
		return nil, err
	}
	target, err := d.ResolveTarget(s)
	if err != nil {
		return nil, err
	}

	var childID *int
	if enclosing != nil {
		id := *enclosing
		childID = &id
	}
	return &Interval{
		Order:        order,
		ChildID:      childID,
		Type:         d.StepType(s),
		Description:  s.Description,
		EndCondition: end,
		Target:       target,
	}, nil
}
