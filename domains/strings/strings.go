// Package strings is the string editing domain, for tackling
// Flashfill-style problems.
package strings

import (
	"fmt"
	stdstrings "strings"

	"github.com/lucasem/program-induction/lambda"
	"github.com/lucasem/program-induction/typesystem"
)

var (
	tInt  = typesystem.Con{Name: "int"}
	tChar = typesystem.Con{Name: "char"}
	tStr  = typesystem.Con{Name: "str"}
)

func tList(t typesystem.Type) typesystem.Type {
	return typesystem.Con{Name: "list", Args: []typesystem.Type{t}}
}

// DSL returns the string editing language:
//
//	"0":           int
//	"+1":          int -> int
//	"-1":          int -> int
//	"len":         str -> int
//	"empty_str":   str
//	"lower":       str -> str
//	"upper":       str -> str
//	"concat":      str -> str -> str
//	"slice":       int -> int -> str -> str
//	"nth":         int -> list(str) -> str
//	"map-to-nums": (t0 -> int) -> list(t0) -> list(int)
//	"map-to-strs": (t0 -> str) -> list(t0) -> list(str)
//	"strip":       str -> str
//	"split":       char -> str -> list(str)
//	"join":        str -> list(str) -> str
//	"char->str":   char -> str
//	"space" "." "," "<" ">" "/" "@" "-" "|": char
func DSL() *lambda.Language {
	t0 := typesystem.Var{Name: "t0"}
	return lambda.Uniform([]lambda.PrimitiveDef{
		{Name: "0", Type: tInt},
		{Name: "+1", Type: typesystem.Arrows(tInt, tInt)},
		{Name: "-1", Type: typesystem.Arrows(tInt, tInt)},
		{Name: "len", Type: typesystem.Arrows(tStr, tInt)},
		{Name: "empty_str", Type: tStr},
		{Name: "lower", Type: typesystem.Arrows(tStr, tStr)},
		{Name: "upper", Type: typesystem.Arrows(tStr, tStr)},
		{Name: "concat", Type: typesystem.Arrows(tStr, tStr, tStr)},
		{Name: "slice", Type: typesystem.Arrows(tInt, tInt, tStr, tStr)},
		{Name: "nth", Type: typesystem.Arrows(tInt, tList(tStr), tStr)},
		{Name: "map-to-nums", Type: typesystem.Arrows(typesystem.Arrows(t0, tInt), tList(t0), tList(tInt))},
		{Name: "map-to-strs", Type: typesystem.Arrows(typesystem.Arrows(t0, tStr), tList(t0), tList(tStr))},
		{Name: "strip", Type: typesystem.Arrows(tStr, tStr)},
		{Name: "split", Type: typesystem.Arrows(tChar, tStr, tList(tStr))},
		{Name: "join", Type: typesystem.Arrows(tStr, tList(tStr), tStr)},
		{Name: "char->str", Type: typesystem.Arrows(tChar, tStr)},
		{Name: "space", Type: tChar},
		{Name: ".", Type: tChar},
		{Name: ",", Type: tChar},
		{Name: "<", Type: tChar},
		{Name: ">", Type: tChar},
		{Name: "/", Type: tChar},
		{Name: "@", Type: tChar},
		{Name: "-", Type: tChar},
		{Name: "|", Type: tChar},
	}, nil)
}

type spaceKind int

const (
	numKind spaceKind = iota
	charKind
	strKind
	strListKind
	numListKind
	funcKind
)

// Space holds every value of the string editing domain.
type Space struct {
	kind    spaceKind
	num     int
	char    rune
	str     string
	strList []string
	numList []int
	fn      lambda.LiftedFunction[Space]
}

func Num(x int) Space { return Space{kind: numKind, num: x} }

func Char(c rune) Space { return Space{kind: charKind, char: c} }

func Str(s string) Space { return Space{kind: strKind, str: s} }

func StrList(ss []string) Space { return Space{kind: strListKind, strList: ss} }

func NumList(xs []int) Space { return Space{kind: numListKind, numList: xs} }

// Equal compares structurally; function values never compare equal.
func (v Space) Equal(w Space) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case numKind:
		return v.num == w.num
	case charKind:
		return v.char == w.char
	case strKind:
		return v.str == w.str
	case strListKind:
		if len(v.strList) != len(w.strList) {
			return false
		}
		for i := range v.strList {
			if v.strList[i] != w.strList[i] {
				return false
			}
		}
		return true
	case numListKind:
		if len(v.numList) != len(w.numList) {
			return false
		}
		for i := range v.numList {
			if v.numList[i] != w.numList[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v Space) String() string {
	switch v.kind {
	case numKind:
		return fmt.Sprintf("%d", v.num)
	case charKind:
		return fmt.Sprintf("%q", v.char)
	case strKind:
		return fmt.Sprintf("%q", v.str)
	case strListKind:
		return fmt.Sprintf("%q", v.strList)
	case numListKind:
		return fmt.Sprintf("%v", v.numList)
	default:
		return "<function>"
	}
}

// Evaluator evaluates string editing expressions over Space.
type Evaluator struct{}

func (Evaluator) Evaluate(name string, args []Space) (Space, error) {
	switch name {
	case "0":
		return Num(0), nil
	case "+1":
		return Num(args[0].num + 1), nil
	case "-1":
		return Num(args[0].num - 1), nil
	case "len":
		return Num(len(args[0].str)), nil
	case "empty_str":
		return Str(""), nil
	case "lower":
		return Str(stdstrings.ToLower(args[0].str)), nil
	case "upper":
		return Str(stdstrings.ToUpper(args[0].str)), nil
	case "concat":
		return Str(args[0].str + args[1].str), nil
	case "slice":
		return Str(slice(args[0].num, args[1].num, args[2].str)), nil
	case "nth":
		i, ss := args[0].num, args[1].strList
		if i < 0 || i >= len(ss) {
			return Str(""), nil
		}
		return Str(ss[i]), nil
	case "map-to-nums":
		return mapList(args[0], args[1], numKind)
	case "map-to-strs":
		return mapList(args[0], args[1], strKind)
	case "strip":
		return Str(stdstrings.TrimSpace(args[0].str)), nil
	case "split":
		return StrList(stdstrings.Split(args[1].str, string(args[0].char))), nil
	case "join":
		return Str(stdstrings.Join(args[1].strList, args[0].str)), nil
	case "char->str":
		return Str(string(args[0].char)), nil
	case "space":
		return Char(' '), nil
	case ".":
		return Char('.'), nil
	case ",":
		return Char(','), nil
	case "<":
		return Char('<'), nil
	case ">":
		return Char('>'), nil
	case "/":
		return Char('/'), nil
	case "@":
		return Char('@'), nil
	case "-":
		return Char('-'), nil
	case "|":
		return Char('|'), nil
	}
	return Space{}, fmt.Errorf("strings: unknown primitive %q", name)
}

// Lift wraps the function so map primitives can call back into it.
func (Evaluator) Lift(f lambda.LiftedFunction[Space]) (Space, bool) {
	return Space{kind: funcKind, fn: f}, true
}

func slice(from, to int, s string) string {
	runes := []rune(s)
	if from < 0 {
		from = 0
	}
	if to > len(runes) {
		to = len(runes)
	}
	if from >= to {
		return ""
	}
	return string(runes[from:to])
}

// mapList applies a lifted function across a str or num list, requiring each
// result to land in the output element kind.
func mapList(f, xs Space, out spaceKind) (Space, error) {
	if f.kind != funcKind {
		return Space{}, fmt.Errorf("strings: map needs a function, got %s", f)
	}
	var elems []Space
	switch xs.kind {
	case strListKind:
		for _, s := range xs.strList {
			elems = append(elems, Str(s))
		}
	case numListKind:
		for _, x := range xs.numList {
			elems = append(elems, Num(x))
		}
	default:
		return Space{}, fmt.Errorf("strings: map needs a list, got %s", xs)
	}

	if out == numKind {
		ys := make([]int, 0, len(elems))
		for _, x := range elems {
			y, err := f.fn.Eval([]Space{x})
			if err != nil {
				return Space{}, err
			}
			if y.kind != numKind {
				return Space{}, fmt.Errorf("strings: map given invalid function")
			}
			ys = append(ys, y.num)
		}
		return NumList(ys), nil
	}
	ys := make([]string, 0, len(elems))
	for _, x := range elems {
		y, err := f.fn.Eval([]Space{x})
		if err != nil {
			return Space{}, err
		}
		if y.kind != strKind {
			return Space{}, fmt.Errorf("strings: map given invalid function")
		}
		ys = append(ys, y.str)
	}
	return StrList(ys), nil
}

// TaskByExample builds an all-or-nothing string editing task.
func TaskByExample(examples []lambda.Example[Space], request typesystem.Type) lambda.Task {
	return lambda.TaskByExample[Space](
		Evaluator{},
		Space.Equal,
		examples,
		request,
	)
}
