package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/luca-patrignani/klondike/domain/klondike"
)

// ErrInvalidSyntax is returned for input that is not a command.
var ErrInvalidSyntax = errors.New("invalid syntax")

// Op names a command of the interactive loop.
type Op string

const (
	OpTable       Op = "t"
	OpDraw        Op = "d"
	OpRestock     Op = "r"
	OpMove        Op = "m"
	OpFoundation  Op = "f"
	OpConsolidate Op = "c"
	OpWaste       Op = "w"
	OpStep        Op = "s"
	OpAuto        Op = "a"
	OpNewGame     Op = "N"
	OpLedger      Op = "l"
	OpHelp        Op = "h"
	OpHelpMove    Op = "h m"
	OpExit        Op = "x"
)

// Command is a parsed input line. From, Count and To are only set for OpMove.
type Command struct {
	Op    Op
	From  klondike.Location
	Count int
	To    klondike.Location
}

var moveRE = regexp.MustCompile(`^m\s+(w|f\d|t\d)(?:,(\d+))?\s+([ft]\d)$`)

var simpleOps = map[string]Op{
	"t":   OpTable,
	"d":   OpDraw,
	"r":   OpRestock,
	"f":   OpFoundation,
	"c":   OpConsolidate,
	"w":   OpWaste,
	"s":   OpStep,
	"a":   OpAuto,
	"N":   OpNewGame,
	"l":   OpLedger,
	"h":   OpHelp,
	"h m": OpHelpMove,
	"x":   OpExit,
}

// ParseCommand parses one line of input. The move grammar is
//
//	m <from>[,count] <to>
//
// where from is w, f1-f4 or t1-t7 and to is f1-f4 or t1-t7.
func ParseCommand(line string) (Command, error) {
	line = strings.Join(strings.Fields(line), " ")
	if op, ok := simpleOps[line]; ok {
		return Command{Op: op}, nil
	}
	m := moveRE.FindStringSubmatch(line)
	if m == nil {
		return Command{}, fmt.Errorf("%w: %q", ErrInvalidSyntax, line)
	}
	from, err := klondike.ParseLocation(m[1])
	if err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
	}
	to, err := klondike.ParseLocation(m[3])
	if err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
	}
	count := 1
	if m[2] != "" {
		if from.Kind() != klondike.PileTableau {
			return Command{}, fmt.Errorf("%w: a count only applies to tableaus", ErrInvalidSyntax)
		}
		count, err = strconv.Atoi(m[2])
		if err != nil || count < 1 {
			return Command{}, fmt.Errorf("%w: bad count %q", ErrInvalidSyntax, m[2])
		}
	}
	return Command{Op: OpMove, From: from, Count: count, To: to}, nil
}
