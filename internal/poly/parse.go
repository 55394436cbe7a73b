package poly

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

var (
	// ErrUnknownFamily is returned for a family letter that is not registered.
	ErrUnknownFamily = errors.New("unknown polynomial family")
	// ErrBadArgument is returned for malformed or out-of-range arguments.
	ErrBadArgument = errors.New("invalid polynomial argument")
	// ErrEmpty is returned when no polynomial is given.
	ErrEmpty = errors.New("no polynomial given")
)

// Parse builds a polynomial from command-line style arguments. The first
// argument is either a family letter followed by its integer arguments
// (e.g. "m 20 5"), or the polynomial is given literally as base-10 integer
// coefficients c0 c1 ... cn, lowest degree first.
func Parse(args []string) (Int, error) {
	if len(args) == 0 {
		return nil, ErrEmpty
	}
	if f, ok := LookupFamily(args[0]); ok {
		rest := args[1:]
		if len(rest) != f.Arity {
			return nil, fmt.Errorf("%w: usage: %s", ErrBadArgument, f.Usage)
		}
		ints := make([]int, len(rest))
		for i, a := range rest {
			v, err := strconv.Atoi(a)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not an integer (usage: %s)", ErrBadArgument, a, f.Usage)
			}
			ints[i] = v
		}
		return BuildFamily(f.Letter, ints...)
	}

	p := make(Int, len(args))
	for i, a := range args {
		c, ok := new(big.Int).SetString(a, 10)
		if !ok {
			if len(a) == 1 && !strings.ContainsAny(a, "0123456789+-") {
				return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, a)
			}
			return nil, fmt.Errorf("%w: coefficient %d (%q) is not an integer", ErrBadArgument, i, a)
		}
		p[i] = c
	}
	return p, nil
}

// ParseString splits s on whitespace and calls Parse.
func ParseString(s string) (Int, error) {
	return Parse(strings.Fields(s))
}
