package parser

// OpCode identifies an instruction in a compiled template.
type OpCode int

const (
	// OpText writes literal template text.
	OpText OpCode = iota

	// OpArg writes the resolved value of a name, optionally escaped.
	OpArg

	// OpSectionOpen begins a section or inverted section. Jump holds the
	// index of the matching OpSectionClose.
	OpSectionOpen

	// OpSectionClose ends a section.
	OpSectionClose

	// OpPartial renders another template in the current context.
	OpPartial
)

func (op OpCode) String() string {
	switch op {
	case OpText:
		return "text"
	case OpArg:
		return "arg"
	case OpSectionOpen:
		return "section-open"
	case OpSectionClose:
		return "section-close"
	case OpPartial:
		return "partial"
	default:
		return "unknown"
	}
}

// Instruction is one step of a compiled template.
type Instruction struct {
	Op       OpCode
	Text     string // literal text for OpText
	Name     string // tag name for OpArg, sections and partials
	Escape   bool   // OpArg: route output through the escape function
	Inverted bool   // OpSectionOpen: render body when the section tests empty
	Jump     int    // OpSectionOpen: index of the matching OpSectionClose
	Line     int    // 1-based source line of the tag
}

// Program is the compiled, flat instruction sequence for one template.
type Program struct {
	Name         string
	Source       string
	Instructions []Instruction
}
