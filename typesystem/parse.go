package typesystem

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse reads a type from its textual form: `int`, `list(t0)`,
// `(t0 -> t1) -> list(t0) -> list(t1)`. Arrows are right-associative.
// Identifiers of the form t0, t1, ... denote variables; anything else is a
// constructed type, applied with parenthesized comma-separated arguments.
func Parse(s string) (Type, error) {
	p := &typeParser{input: s}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("trailing input at offset %d: %q", p.pos, p.input[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) skipSpaces() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) parseType() (Type, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if strings.HasPrefix(p.input[p.pos:], "->") {
		p.pos += 2
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return Arrow{Arg: atom, Ret: ret}, nil
	}
	return atom, nil
}

func (p *typeParser) parseAtom() (Type, error) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("unexpected end of type at offset %d", p.pos)
	}
	if p.input[p.pos] == '(' {
		p.pos++
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		p.skipSpaces()
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return nil, fmt.Errorf("expected ) at offset %d", p.pos)
		}
		p.pos++
		return t, nil
	}

	name := p.parseIdent()
	if name == "" {
		return nil, fmt.Errorf("expected type name at offset %d", p.pos)
	}

	// constructor application: name(arg, ...)
	if p.pos < len(p.input) && p.input[p.pos] == '(' {
		p.pos++
		var args []Type
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.skipSpaces()
			if p.pos < len(p.input) && p.input[p.pos] == ',' {
				p.pos++
				continue
			}
			break
		}
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return nil, fmt.Errorf("expected ) at offset %d", p.pos)
		}
		p.pos++
		return Con{Name: name, Args: args}, nil
	}

	if isVarName(name) {
		return Var{Name: name}, nil
	}
	return Con{Name: name}, nil
}

func (p *typeParser) parseIdent() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)) {
			p.pos++
			continue
		}
		break
	}
	return p.input[start:p.pos]
}

// isVarName reports whether name looks like an allocated variable: a 't'
// followed only by digits.
func isVarName(name string) bool {
	if len(name) < 2 || name[0] != 't' {
		return false
	}
	for i := 1; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}
