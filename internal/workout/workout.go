package workout

import "fmt"

// Workout is a compiled workout ready to be serialized for the remote
// service. ID and OwnerID are set only when updating an existing remote
// workout.
type Workout struct {
	ID          *int64
	OwnerID     *int64
	Name        string
	Description string
	Sport       Sport
	Steps       []CompiledNode
}

// Compiler turns definitions into workouts for one discipline. It holds
// only read-only inputs and is safe for concurrent use.
type Compiler struct {
	discipline Discipline
}

// NewCompiler returns a Compiler for the given discipline.
func NewCompiler(d Discipline) *Compiler {
	return &Compiler{discipline: d}
}

// Discipline returns the compiler's discipline.
func (c *Compiler) Discipline() Discipline { return c.discipline }

// Compile builds the workout for def. existing is the identity of the
// remote workout to update, or nil to create a new one. No workout is
// returned on error.
func (c *Compiler) Compile(def Definition, existing *RemoteIdentity) (*Workout, error) {
	steps, err := BuildSteps(def.Steps, c.discipline)
	if err != nil {
		return nil, fmt.Errorf("workout %q: %w", def.Name, err)
	}
	desc, err := c.discipline.describe(def)
	if err != nil {
		return nil, fmt.Errorf("workout %q: %w", def.Name, err)
	}

	w := &Workout{
		Name:        def.Name,
		Description: desc,
		Sport:       c.discipline.Sport(),
		Steps:       steps,
	}
	if existing != nil {
		id, owner := existing.ID, existing.OwnerID
		w.ID = &id
		w.OwnerID = &owner
	}
	return w, nil
}
