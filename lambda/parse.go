package lambda

import (
	"strings"
	"unicode"
)

// Parse reads an expression from its textual form, the inverse of Stringify.
//
// Abstractions take the form `(λ BODY)` or `(lambda BODY)`, where BODY may
// use a corresponding De Bruijn index `$n`. Applications are parenthesized
// and left-folded: `(f x y)` is `((f x) y)`. An invented expression is
// written `#(...)` and must be structurally equal to an already-registered
// invention. Any other token is looked up as a primitive by exact name.
//
// Errors are *ParseError values carrying the byte offset of the failure.
// Trailing non-whitespace after a complete expression is rejected.
func (l *Language) Parse(inp string) (Expression, error) {
	s := strings.TrimLeftFunc(inp, unicode.IsSpace)
	offset := len(inp) - len(s)
	di, expr, err := l.parseExpr(s, offset)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(s[di:]) != "" {
		return nil, &ParseError{Offset: offset + di, Msg: "expected end of expression, found more tokens"}
	}
	return expr, nil
}

// parseExpr parses one expression at the start of inp, which must not have
// leading whitespace. offset is inp's position in the original input, for
// error locations. It returns the number of bytes consumed.
func (l *Language) parseExpr(inp string, offset int) (int, Expression, error) {
	switch {
	case inp == "":
		return 0, nil, &ParseError{Offset: offset, Msg: "could not parse any expression variant"}
	case strings.HasPrefix(inp, "#("):
		return l.parseInvented(inp, offset)
	case inp[0] == '(':
		if di, expr, err, ok := l.parseAbstraction(inp, offset); ok {
			return di, expr, err
		}
		return l.parseApplication(inp, offset)
	case inp[0] == '$':
		if di, expr, ok := parseIndex(inp); ok {
			return di, expr, nil
		}
		// tokens like $x fall through to primitive lookup
		return l.parsePrimitive(inp, offset)
	default:
		return l.parsePrimitive(inp, offset)
	}
}

// tokenEnd returns the length of the maximal run of non-whitespace,
// non-')' bytes at the start of inp.
func tokenEnd(inp string) int {
	for i, c := range inp {
		if c == ')' || unicode.IsSpace(c) {
			return i
		}
	}
	return len(inp)
}

func skipSpaces(inp string, pos int) int {
	for pos < len(inp) && unicode.IsSpace(rune(inp[pos])) {
		pos++
	}
	return pos
}

// parseAbstraction recognizes `( (λ|lambda) <expr> )`. ok is false when the
// parenthesized form is not an abstraction, in which case the caller should
// try application instead.
func (l *Language) parseAbstraction(inp string, offset int) (int, Expression, error, bool) {
	pos := skipSpaces(inp, 1)
	end := pos + tokenEnd(inp[pos:])
	kw := inp[pos:end]
	if kw != "λ" && kw != "lambda" {
		return 0, nil, nil, false
	}
	// the keyword must be followed by whitespace, else `(λ)` is an
	// application of a primitive that happens to be named λ
	if end >= len(inp) || !unicode.IsSpace(rune(inp[end])) {
		return 0, nil, nil, false
	}
	pos = skipSpaces(inp, end)
	ndi, body, err := l.parseExpr(inp[pos:], offset+pos)
	if err != nil {
		return 0, nil, err, true
	}
	pos = skipSpaces(inp, pos+ndi)
	if pos >= len(inp) || inp[pos] != ')' {
		return 0, nil, &ParseError{Offset: offset + pos, Msg: "incomplete abstraction"}, true
	}
	return pos + 1, &Abstraction{Body: body}, nil, true
}

// parseApplication recognizes `( <expr> <expr>+ )`, folding left so the
// first sub-expression is applied successively to each following one.
func (l *Language) parseApplication(inp string, offset int) (int, Expression, error) {
	pos := 1
	var items []Expression
	for {
		pos = skipSpaces(inp, pos)
		if pos >= len(inp) {
			return 0, nil, &ParseError{Offset: offset + pos, Msg: "incomplete application"}
		}
		if inp[pos] == ')' {
			pos++
			break
		}
		ndi, item, err := l.parseExpr(inp[pos:], offset+pos)
		if err != nil {
			return 0, nil, err
		}
		items = append(items, item)
		pos += ndi
	}
	if len(items) == 0 {
		return 0, nil, &ParseError{Offset: offset + pos, Msg: "empty application"}
	}
	expr := items[0]
	for _, arg := range items[1:] {
		expr = &Application{Func: expr, Arg: arg}
	}
	return pos, expr, nil
}

// parseIndex recognizes `$<nonneg-int>`. ok is false when the token after
// `$` is not entirely digits.
func parseIndex(inp string) (int, Expression, bool) {
	end := 1 + tokenEnd(inp[1:])
	if end == 1 {
		return 0, nil, false
	}
	num := 0
	for i := 1; i < end; i++ {
		c := inp[i]
		if c < '0' || c > '9' {
			return 0, nil, false
		}
		num = num*10 + int(c-'0')
	}
	return end, &Index{Num: num}, true
}

// parseInvented recognizes `#(<expr>)`; the parenthesized expression must be
// structurally equal to a registered invention.
func (l *Language) parseInvented(inp string, offset int) (int, Expression, error) {
	ndi, expr, err := l.parseExpr(inp[1:], offset+1)
	if err != nil {
		return 0, nil, err
	}
	di := 1 + ndi
	for num, def := range l.Invented {
		if def.Expr.Equal(expr) {
			return di, &Invented{Num: num}, nil
		}
	}
	return 0, nil, &ParseError{Offset: offset + di, Msg: "unfamiliar invention"}
}

func (l *Language) parsePrimitive(inp string, offset int) (int, Expression, error) {
	di := tokenEnd(inp)
	if di == 0 {
		return 0, nil, &ParseError{Offset: offset, Msg: "could not parse any expression variant"}
	}
	name := inp[:di]
	for num, def := range l.Primitives {
		if def.Name == name {
			return di, &Primitive{Num: num}, nil
		}
	}
	return 0, nil, &ParseError{Offset: offset + di, Msg: "unfamiliar primitive: " + name}
}
