package mustache

import (
	"fmt"
	"strings"

	"github.com/skyformat99/mustache/parser"
	"github.com/skyformat99/mustache/value"
)

const maxRecursion = 500

// State holds the evaluation state during a single render: the output
// sink, the scope chain, and the partial recursion depth. A State is used
// by one goroutine for the duration of one render; independent renders
// over a shared read-only document may run concurrently with separate
// States.
type State struct {
	env   *Environment
	name  string
	out   *strings.Builder
	depth int
	fuel  *fuelTracker
}

func newState(env *Environment, name string) *State {
	s := &State{
		env:  env,
		name: name,
		out:  &strings.Builder{},
	}
	if env.fuel > 0 {
		s.fuel = newFuelTracker(env.fuel)
	}
	return s
}

// render executes a compiled program against the document and returns the
// accumulated output. On error the output contains whatever prefix was
// emitted before the failure; no rollback is attempted.
func (s *State) render(prog *parser.Program, doc value.Value) (string, error) {
	root := newFrame(nil, doc)
	if err := s.exec(prog, 0, len(prog.Instructions), root); err != nil {
		s.onError(err)
		return s.out.String(), err
	}
	return s.out.String(), nil
}

// exec walks the instruction window [start, end) against frame.
func (s *State) exec(prog *parser.Program, start, end int, frame *Frame) error {
	pc := start
	for pc < end {
		in := prog.Instructions[pc]
		if err := s.consumeFuel(1); err != nil {
			return err
		}

		switch in.Op {
		case parser.OpText:
			s.onText(in.Text)
			pc++

		case parser.OpArg:
			s.onArg(frame, in.Name, in.Escape)
			pc++

		case parser.OpSectionOpen:
			count := sectionTest(frame, in.Name, false)
			bodyStart, bodyEnd := pc+1, in.Jump

			if in.Inverted {
				if count == 0 {
					child := newFrame(frame, frame.Context())
					if err := s.exec(prog, bodyStart, bodyEnd, child); err != nil {
						return err
					}
				}
			} else {
				for i := 0; i < count; i++ {
					ctx, err := sectionEnter(frame, in.Name, i)
					if err != nil {
						if e, ok := err.(*Error); ok {
							e.WithName(prog.Name).WithLine(in.Line)
						}
						return err
					}
					child := newFrame(frame, ctx)
					if err := s.exec(prog, bodyStart, bodyEnd, child); err != nil {
						return err
					}
				}
			}
			pc = in.Jump + 1

		case parser.OpSectionClose:
			// Reached only when executing a window that starts inside a
			// section body; the open instruction's jump skips it otherwise.
			pc++

		case parser.OpPartial:
			if err := s.execPartial(in, frame); err != nil {
				return err
			}
			pc++

		default:
			return NewError(ErrStructure,
				fmt.Sprintf("unknown instruction %d", in.Op)).WithName(prog.Name)
		}
	}
	return nil
}

func (s *State) execPartial(in parser.Instruction, frame *Frame) error {
	if s.depth >= maxRecursion {
		return NewError(ErrTooDeep,
			fmt.Sprintf("partial %q nested deeper than %d", in.Name, maxRecursion)).
			WithName(s.name).WithLine(in.Line)
	}

	prog, err := s.env.program(in.Name)
	if err != nil {
		return NewError(ErrPartialNotFound, in.Name).WithName(s.name).WithLine(in.Line)
	}

	s.depth++
	err = s.exec(prog, 0, len(prog.Instructions), frame)
	s.depth--
	return err
}

// onText appends literal template text to the sink verbatim.
func (s *State) onText(text string) {
	s.out.WriteString(text)
}

// onArg resolves name and appends its text form. Unresolved names and
// values with an empty text form emit nothing. The escape flag routes the
// text through the environment's escape function; the rule itself is the
// environment's concern, this only decides whether to apply it.
func (s *State) onArg(frame *Frame, name string, escape bool) {
	v, ok := resolve(frame, name)
	if !ok {
		return
	}
	text := v.String()
	if text == "" {
		return
	}
	if escape && s.env.escapeFunc != nil {
		text = s.env.escapeFunc(text)
	}
	s.out.WriteString(text)
}

// onError is the unrecoverable-failure hook. Frames own no external
// resources, so there is nothing to release; the contract is only that it
// never panics or propagates.
func (s *State) onError(err error) {
	_ = err
}

func (s *State) consumeFuel(amount int64) error {
	if s.fuel == nil {
		return nil
	}
	return s.fuel.consume(amount)
}
