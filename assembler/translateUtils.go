package assembler

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RegisterNameMap maps every accepted register spelling to its number.
var RegisterNameMap = map[string]uint32{
	"$zero": 0,
	"$0":    0,
	"$at":   1,
	"$v0":   2,
	"$a0":   4,
	"$a1":   5,
	"$a2":   6,
	"$a3":   7,
	"$t0":   8,
	"$t1":   9,
	"$t2":   10,
	"$t3":   11,
	"$s0":   16,
	"$s1":   17,
	"$s2":   18,
	"$s3":   19,
	"$sp":   29,
	"$fp":   30,
	"$ra":   31,
}

// ParseRegister returns the register number for str.
func ParseRegister(str string) (uint32, error) {
	reg, ok := RegisterNameMap[str]
	if !ok {
		return 0, newError(ErrInvalidRegister, "", str)
	}
	return reg, nil
}

// ParseInteger parses a signed decimal or 0x-prefixed hexadecimal literal and
// checks it against the inclusive range [lower, upper].
func ParseInteger(str string, lower, upper int64) (int64, error) {
	digits := str
	negative := false
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		negative = digits[0] == '-'
		digits = digits[1:]
	}

	base := 10
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		base = 16
		digits = digits[2:]
	}
	if len(digits) == 0 || digits[0] == '-' || digits[0] == '+' {
		return 0, newError(ErrUnparseable, "", str)
	}

	magnitude, err := strconv.ParseUint(digits, base, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, newError(ErrNumberOutOfRange, "", str)
	} else if err != nil {
		return 0, newError(ErrUnparseable, "", str)
	}

	var value int64
	switch {
	case !negative && magnitude <= 1<<63-1:
		value = int64(magnitude)
	case negative && magnitude <= 1<<63:
		value = int64(-magnitude)
	default:
		return 0, newError(ErrNumberOutOfRange, "", str)
	}

	if value < lower || value > upper {
		return 0, newError(ErrNumberOutOfRange, "", str)
	}
	return value, nil
}

// IsValidLabel reports whether str starts with a letter or underscore and
// continues with letters, digits or underscores only.
func IsValidLabel(str string) bool {
	if len(str) == 0 {
		return false
	}
	for i, char := range str {
		letter := (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || char == '_'
		if i == 0 && !letter {
			return false
		}
		if !letter && !(char >= '0' && char <= '9') {
			return false
		}
	}
	return true
}

func writeInstString(w io.Writer, name string, args []string) error {
	_, err := fmt.Fprintln(w, strings.Join(append([]string{name}, args...), " "))
	return err
}

func writeInstHex(w io.Writer, instruction uint32) error {
	_, err := fmt.Fprintf(w, "%08x\n", instruction)
	return err
}
