package assembler

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// EvaluateHover returns markdown describing the token at position, and false
// when there is nothing to describe.
func (a *AssembledResult) EvaluateHover(position TextPosition) (string, bool) {
	if position.Line < 0 || position.Line >= len(a.fileContents) {
		return "", false
	}
	line := stripComment(a.fileContents[position.Line])

	if position.Char < a.lineLengthDeltas[position.Line] {
		// the hover is over a label definition
		for label, lineNum := range a.LabelToLineNumber {
			if lineNum == position.Line {
				addr, _ := a.Labels.Lookup(label)
				return fmt.Sprintf(hoverInfoFormats.labelDefinition, label, addr), true
			}
		}
		return "", false
	}

	delta := a.lineLengthDeltas[position.Line]
	tokens := tokenize(line[delta:], delta)
	for i, t := range tokens {
		if position.Char < t.start || position.Char >= t.start+len(t.text) {
			continue
		}
		if i == 0 {
			return a.getHoverInfoForInstruction(t.text, tokens[1:], position.Line)
		}
		return a.getHoverInfoForOperand(t.text)
	}
	return "", false
}

func (a *AssembledResult) getHoverInfoForInstruction(mnemonic string, operands []token, lineNum int) (string, bool) {
	description, ok := instructionDescriptions[mnemonic]
	if !ok {
		return "", false
	}

	if IsPseudoInstruction(mnemonic) {
		args := lo.Map(operands, func(t token, _ int) string { return t.text })
		expanded := strings.Builder{}
		if _, err := WritePassOne(&expanded, mnemonic, args); err != nil {
			return description, true
		}
		return fmt.Sprintf(hoverInfoFormats.pseudo, description, expanded.String()), true
	}

	family, format, _ := InstructionFormat(mnemonic)
	layout, _ := FieldLayout(mnemonic)
	fields := strings.Join(lo.Map(layout, func(f Field, _ int) string {
		return fmt.Sprintf("`%s` [%d:%d]", f.Name, f.Shift+f.Width-1, f.Shift)
	}), ", ")
	text := fmt.Sprintf(hoverInfoFormats.encoding, description, family, format, fields)

	// words assembled from this line, in address order
	addrs := lo.Filter(lo.Keys(a.AddressToLine), func(addr uint32, _ int) bool {
		return a.AddressToLine[addr] == lineNum
	})
	slices.Sort(addrs)
	for _, addr := range addrs {
		text += fmt.Sprintf("\n\n`0x%08x`: `%08x`", addr, a.addressToWord[addr])
	}
	return text, true
}

func (a *AssembledResult) getHoverInfoForOperand(operand string) (string, bool) {
	if reg, err := ParseRegister(operand); err == nil {
		return fmt.Sprintf(hoverInfoFormats.register, operand, reg, registerDescriptions[reg]), true
	}
	if value, err := ParseInteger(operand, -1<<63, 1<<63-1); err == nil {
		return fmt.Sprintf(hoverInfoFormats.integerLiteral, value, "0x"+strconv.FormatUint(uint64(value)&0xFFFFFFFF, 16)), true
	}
	if addr, ok := a.Labels.Lookup(operand); ok {
		return fmt.Sprintf(hoverInfoFormats.labelReference, operand, addr), true
	}
	if refs := lo.CountBy(a.Relocations.Entries(), func(s Symbol) bool { return s.Name == operand }); refs > 0 {
		return fmt.Sprintf(hoverInfoFormats.labelRelocation, operand, refs), true
	}
	return "", false
}
