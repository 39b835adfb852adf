package logic

import "strings"

// Series chains instructions on one rung, e.g. "XIC(a)OTE(b);".
func Series(insts ...Instruction) NeutralText {
	var b strings.Builder
	for _, inst := range insts {
		b.WriteString(inst.Text())
	}
	b.WriteByte(';')
	return NewNeutralText(b.String())
}

// Branch places each leg in parallel, e.g. "[XIC(a),XIO(b)];".
func Branch(legs ...NeutralText) NeutralText {
	parts := make([]string, len(legs))
	for i, leg := range legs {
		parts[i] = leg.body()
	}
	return NewNeutralText("[" + strings.Join(parts, ",") + "];")
}

// Concat chains rung fragments, e.g. Concat(Branch(...), Series(OTE)) gives
// "[XIC(a),XIO(b)]OTE(c);".
func Concat(parts ...NeutralText) NeutralText {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.body())
	}
	b.WriteByte(';')
	return NewNeutralText(b.String())
}

// Join writes each instruction as its own statement, e.g. "XIC(a);OTE(b);".
func Join(insts ...Instruction) NeutralText {
	var b strings.Builder
	for _, inst := range insts {
		b.WriteString(inst.Text())
		b.WriteByte(';')
	}
	if b.Len() == 0 {
		return NewNeutralText("")
	}
	return NewNeutralText(b.String())
}
