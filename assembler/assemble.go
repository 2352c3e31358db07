package assembler

import (
	"errors"
	"strings"

	"github.gatech.edu/ECEInnovation/MIPS-Assembler/util"
)

var assemblerConfig AssemblerConfig

func GetConfig() AssemblerConfig {
	return assemblerConfig
}

func SetConfig(config AssemblerConfig) {
	assemblerConfig = config
}

type token struct {
	text  string
	start int // byte offset in the line
}

func isSeparator(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v' || c == ',' || c == '(' || c == ')'
}

// tokenize splits line on whitespace, commas and parentheses, so that
// "sw $t0, 0($sp)" becomes sw, $t0, 0, $sp.
func tokenize(line string, offset int) []token {
	tokens := []token{}
	start := -1
	for i := 0; i <= len(line); i++ {
		if i == len(line) || isSeparator(line[i]) {
			if start != -1 {
				tokens = append(tokens, token{text: line[start:i], start: offset + start})
				start = -1
			}
		} else if start == -1 {
			start = i
		}
	}
	return tokens
}

func stripComment(line string) string {
	if idx := strings.Index(line, "#"); idx != -1 {
		return line[:idx]
	}
	return line
}

// ParseLine splits a source line into its label (if any) and instruction.
// ok is false when the line holds no instruction.
func ParseLine(line string) (label string, inst Instruction, ok bool) {
	line = stripComment(line)
	if colonIndex := strings.Index(line, ":"); colonIndex != -1 {
		label = strings.TrimSpace(line[:colonIndex])
		line = line[colonIndex+1:]
	}
	tokens := tokenize(line, 0)
	if len(tokens) == 0 {
		return label, Instruction{}, false
	}
	inst.Mnemonic = tokens[0].text
	inst.Args = make([]string, 0, len(tokens)-1)
	for _, t := range tokens[1:] {
		inst.Args = append(inst.Args, t.text)
	}
	return label, inst, true
}

func (a *AssembledResult) lineRange(lineNum int) TextRange {
	line := stripComment(a.fileContents[lineNum])
	start := a.lineLengthDeltas[lineNum]
	trimmed, diff := trimAndGetFrontDiffCount(line[start:], " \t\r")
	return TextRange{
		Start: TextPosition{Line: lineNum, Char: start + diff},
		End:   TextPosition{Line: lineNum, Char: start + diff + len(trimmed)},
	}
}

func trimAndGetFrontDiffCount(str, cutset string) (string, int) {
	strOut := strings.Trim(str, cutset)
	return strOut, len(str) - len(strings.TrimLeft(str, cutset))
}

// errorRange narrows the range to the construct named by err when it appears
// on the line.
func (a *AssembledResult) errorRange(err error, lineNum int) TextRange {
	r := a.lineRange(lineNum)
	var te *TranslationError
	if !errors.As(err, &te) || te.Construct == "" {
		return r
	}
	line := stripComment(a.fileContents[lineNum])
	charPos := strings.Index(line[a.lineLengthDeltas[lineNum]:], te.Construct)
	if charPos == -1 {
		return r
	}
	charPos += a.lineLengthDeltas[lineNum]
	return TextRange{
		Start: TextPosition{Line: lineNum, Char: charPos},
		End:   TextPosition{Line: lineNum, Char: charPos + len(te.Construct)},
	}
}

func (a *AssembledResult) hasErrors() bool {
	for _, d := range a.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// passOne records labels and expands pseudo-instructions. Addresses advance
// by 4 bytes per emitted instruction.
func (a *AssembledResult) passOne() {
	addr := assemblerConfig.TextBaseAddress
	out := strings.Builder{}
	for i, line := range a.fileContents {
		if assemblerConfig.StopOnFirstError && a.hasErrors() {
			break
		}

		line = stripComment(line)
		if colonIndex := strings.Index(line, ":"); colonIndex != -1 {
			labelName, diff := trimAndGetFrontDiffCount(line[:colonIndex], " \t\r")
			r := TextRange{
				Start: TextPosition{Line: i, Char: diff}, End: TextPosition{Line: i, Char: diff + len(labelName)},
			}
			a.lineLengthDeltas[i] = colonIndex + 1
			if !IsValidLabel(labelName) {
				a.Diagnostics = append(a.Diagnostics, Errors.InvalidSymbolName(labelName, r))
			} else if err := a.Labels.Add(labelName, addr); err != nil {
				if errors.Is(err, ErrDuplicateName) {
					a.Diagnostics = append(a.Diagnostics, Errors.DuplicateLabel(labelName, r))
				} else {
					a.Diagnostics = append(a.Diagnostics, Errors.FromError(err, r))
				}
			} else {
				a.LabelToLineNumber[labelName] = i
			}
		}

		tokens := tokenize(line[a.lineLengthDeltas[i]:], a.lineLengthDeltas[i])
		if len(tokens) == 0 {
			continue
		}
		if strings.HasPrefix(tokens[0].text, ".") {
			a.Diagnostics = append(a.Diagnostics, Warnings.IgnoredDirective(tokens[0].text, TextRange{
				Start: TextPosition{Line: i, Char: tokens[0].start}, End: TextPosition{Line: i, Char: tokens[0].start + len(tokens[0].text)},
			}))
			continue
		}

		args := make([]string, 0, len(tokens)-1)
		for _, t := range tokens[1:] {
			args = append(args, t.text)
		}
		count, err := WritePassOne(&out, tokens[0].text, args)
		if err != nil {
			a.Diagnostics = append(a.Diagnostics, Errors.FromError(err, a.errorRange(err, i)))
			continue
		}
		for j := 0; j < count; j++ {
			a.passOneToLine = append(a.passOneToLine, i)
		}
		addr += uint32(count) * 4
	}
	a.PassOne = out.String()
	util.LogF("pass one: %d instructions, %d labels", len(a.passOneToLine), a.Labels.Len())
}

// passTwo encodes the intermediate listing. Words that fail to encode are
// left out of ProgramText and HexText.
func (a *AssembledResult) passTwo() {
	if a.PassOne == "" {
		return
	}
	hex := strings.Builder{}
	lines := strings.Split(strings.TrimSuffix(a.PassOne, "\n"), "\n")
	for k, line := range lines {
		if assemblerConfig.StopOnFirstError && a.hasErrors() {
			break
		}

		addr := assemblerConfig.TextBaseAddress + uint32(k)*4
		lineNum := a.passOneToLine[k]
		tokens := tokenize(line, 0)
		args := make([]string, 0, len(tokens)-1)
		for _, t := range tokens[1:] {
			args = append(args, t.text)
		}

		instruction, err := EncodeInstruction(tokens[0].text, args, addr, a.Labels, a.Relocations)
		if err != nil {
			Logger.Printf("Error: line %d: %v\n", lineNum+1, err)
			a.Diagnostics = append(a.Diagnostics, Errors.FromError(err, a.errorRange(err, lineNum)))
			continue
		}
		writeInstHex(&hex, instruction)
		a.ProgramText = append(a.ProgramText, instruction)
		a.AddressToLine[addr] = lineNum
		a.addressToWord[addr] = instruction
	}
	a.HexText = hex.String()
	util.LogF("pass two: %d words, %d relocations", len(a.ProgramText), a.Relocations.Len())
}

// Assemble runs both passes over input. Labels are bound to the address of
// the next instruction; jumps are left for the linker in Relocations.
func Assemble(input string) (res *AssembledResult) {
	res = new(AssembledResult)
	res.Labels = NewSymbolTable(Unique)
	res.Relocations = NewSymbolTable(NonUnique)
	res.LabelToLineNumber = make(map[string]int)
	res.AddressToLine = make(map[uint32]int)
	res.addressToWord = make(map[uint32]uint32)
	res.lineLengthDeltas = make(map[int]int)
	res.fileContents = strings.Split(input, "\n")

	res.passOne()
	if assemblerConfig.StopOnFirstError && res.hasErrors() {
		return
	}
	res.passTwo()
	return
}
