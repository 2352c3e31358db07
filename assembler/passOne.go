package assembler

import (
	"bytes"
	"io"
	"math"
	"strconv"
)

// pseudoArity lists the pseudo-instructions pass one expands and the number
// of arguments each one takes.
var pseudoArity = map[string]int{
	"li":   2,
	"push": 1,
	"pop":  1,
	"mod":  3,
	"subu": 3,
}

// IsPseudoInstruction reports whether pass one rewrites name.
func IsPseudoInstruction(name string) bool {
	_, ok := pseudoArity[name]
	return ok
}

// WritePassOne writes the real instructions for name/args to w, one per line,
// and returns how many it wrote. Instructions that are not pseudo-instructions
// are echoed unchanged. On error nothing is written and the count is 0.
func WritePassOne(w io.Writer, name string, args []string) (int, error) {
	lines, err := ExpandPseudo(name, args)
	if err != nil {
		Logger.Printf("Error: could not expand %s: %v\n", name, err)
		return 0, err
	}

	buf := bytes.Buffer{}
	for _, inst := range lines {
		if err := writeInstString(&buf, inst.Mnemonic, inst.Args); err != nil {
			return 0, err
		}
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(lines), nil
}

// ExpandPseudo returns the real instructions name/args stands for. Registers
// and labels are not checked here; pass two does that.
func ExpandPseudo(name string, args []string) ([]Instruction, error) {
	if name == "" {
		return nil, newError(ErrMissingArgument, name, "")
	}
	for _, arg := range args {
		if arg == "" {
			return nil, newError(ErrMissingArgument, name, "")
		}
	}

	arity, ok := pseudoArity[name]
	if !ok {
		return []Instruction{{Mnemonic: name, Args: args}}, nil
	}
	if len(args) != arity {
		return nil, newError(ErrInvalidArgumentCount, name, strconv.Itoa(arity)+" arguments")
	}

	switch name {
	case "li":
		// accepts anything that fits in 32 bits, signed or unsigned
		imm, err := ParseInteger(args[1], math.MinInt32, math.MaxUint32)
		if err != nil {
			return nil, withMnemonic(err, name)
		}
		// 32768..65535 take this path too and are rejected when encoded
		if imm < 65536 {
			return []Instruction{
				{Mnemonic: "addiu", Args: []string{args[0], "$0", args[1]}},
			}, nil
		}
		return []Instruction{
			{Mnemonic: "lui", Args: []string{"$at", strconv.FormatInt(imm>>16, 10)}},
			{Mnemonic: "ori", Args: []string{args[0], "$at", strconv.FormatInt(imm&0xFFFF, 10)}},
		}, nil
	case "push":
		return []Instruction{
			{Mnemonic: "addiu", Args: []string{"$sp", "$sp", "-4"}},
			{Mnemonic: "sw", Args: []string{args[0], "0($sp)"}},
		}, nil
	case "pop":
		return []Instruction{
			{Mnemonic: "lw", Args: []string{args[0], "0($sp)"}},
			{Mnemonic: "addiu", Args: []string{"$sp", "$sp", "4"}},
		}, nil
	case "mod":
		return []Instruction{
			{Mnemonic: "div", Args: []string{args[1], args[2]}},
			{Mnemonic: "mfhi", Args: []string{args[0]}},
		}, nil
	case "subu":
		// rd = rs + (~rt + 1)
		return []Instruction{
			{Mnemonic: "addiu", Args: []string{"$at", "$0", "-1"}},
			{Mnemonic: "xor", Args: []string{"$at", "$at", args[2]}},
			{Mnemonic: "addiu", Args: []string{"$at", "$at", "1"}},
			{Mnemonic: "addu", Args: []string{args[0], args[1], "$at"}},
		}, nil
	}
	return nil, newError(ErrUnknownMnemonic, name, "")
}
