// Package logic parses, validates and rebuilds neutral text: the flat
// semicolon-terminated strings that carry ladder rungs and structured-text
// statements, such as
//
//	[XIC(SomeBit),XIO(AnotherBit)]OTE(OutputBit);
//
// An Argument is a tag reference, a typed immediate, an expression or the "?"
// placeholder. An Instruction is a key plus ordered arguments; the Registry
// knows every built-in key and its classification. NeutralText walks the
// (possibly branched, possibly nested) calls of a rung and yields its call
// units, tags and keywords as lazy sequences.
//
// Everything here is a pure function of its input. The built-in registry is
// built once on first use and is read-only afterwards.
package logic
