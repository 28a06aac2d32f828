package model

import (
	"fmt"
	"unicode/utf8"
)

// ArgLocation points at a byte offset inside one of the tool arguments.
type ArgLocation struct {
	Arg    int // zero-based argument index
	Column int // 1-based rune column

	Offset int // byte offset within the argument
}

func LocateInArg(args []string, arg, offset int) ArgLocation {
	loc := ArgLocation{Arg: arg, Offset: offset}
	if arg < 0 || arg >= len(args) {
		return loc
	}
	s := args[arg]
	if offset > len(s) {
		offset = len(s)
	}
	loc.Column = 1 + utf8.RuneCountInString(s[:offset])
	return loc
}

func (l ArgLocation) String() string {
	return fmt.Sprintf("arg %d:%d", l.Arg+1, l.Column)
}
