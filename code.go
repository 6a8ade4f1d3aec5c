package sqf

// Code is the shared backing store behind TCode values: a compiled
// instruction sequence produced by either front-end parser (sqfasm or
// sqfexpr). SQF code blocks are not lexical closures — spawning a new scope
// for a call sees the dynamic call stack, not a captured environment — so
// Code carries no environment pointer, only its own body and the source text
// it was compiled from (empty for nested {...} blocks built by sqfexpr).
// Nothing in this module reads Source back; "str" renders a code value as
// its instruction count.
type Code struct {
	Instructions []Instruction
	Source       string
}

func NewCode(instructions []Instruction, source string) *Code {
	return &Code{Instructions: instructions, Source: source}
}
