package finlit

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/francocalvo/finlit/date"
)

// ErrQuerySyntax is wrapped by every error returned by ParseQuery.
var ErrQuerySyntax = errors.New("query syntax error")

// ParseQuery parses an aggregate query written in the ledger query dialect:
//
//	SELECT SUM(CONVERT(POSITION, 'USD', DATE))
//	WHERE account ~ '^Expenses' AND date >= DATE('2024-01-01') AND date < DATE('2024-07-01')
//
// The target is POSITION, optionally wrapped in CONVERT to a currency, summed
// with SUM and optionally wrapped in NUMBER. Conditions are joined with AND;
// "account ~" matches a case-insensitive regular expression, "date" compares
// with <, <=, >, >= or =.
func ParseQuery(s string) (AggregateQuery, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return AggregateQuery{}, err
	}
	p := &queryParser{tokens: tokens}
	q, err := p.parse()
	if err != nil {
		return AggregateQuery{}, err
	}
	return q, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func syntaxError(pos int, format string, args ...any) error {
	return fmt.Errorf("%w at %d: %s", ErrQuerySyntax, pos, fmt.Sprintf(format, args...))
}

func tokenize(s string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(s); {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '\'' || c == '"':
			end := strings.IndexRune(s[i+1:], c)
			if end < 0 {
				return nil, syntaxError(i, "unterminated string")
			}
			tokens = append(tokens, token{tokString, s[i+1 : i+1+end], i})
			i += end + 2
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(s) && (unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j])) || s[j] == '_') {
				j++
			}
			tokens = append(tokens, token{tokIdent, s[i:j], i})
			i = j
		case strings.ContainsRune("(),~=", c):
			tokens = append(tokens, token{tokPunct, string(c), i})
			i++
		case c == '<' || c == '>':
			if i+1 < len(s) && s[i+1] == '=' {
				tokens = append(tokens, token{tokPunct, s[i : i+2], i})
				i += 2
			} else {
				tokens = append(tokens, token{tokPunct, string(c), i})
				i++
			}
		default:
			return nil, syntaxError(i, "unexpected character %q", c)
		}
	}
	return append(tokens, token{kind: tokEOF, pos: len(s)}), nil
}

type queryParser struct {
	tokens []token
	i      int
}

func (p *queryParser) peek() token { return p.tokens[p.i] }

func (p *queryParser) next() token {
	t := p.tokens[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

// keyword consumes an identifier matching kw, case-insensitively.
func (p *queryParser) keyword(kw string) bool {
	if t := p.peek(); t.kind == tokIdent && strings.EqualFold(t.text, kw) {
		p.i++
		return true
	}
	return false
}

func (p *queryParser) expect(kind tokenKind, text string) (token, error) {
	t := p.next()
	if t.kind != kind || (text != "" && t.text != text) {
		want := text
		if want == "" {
			want = map[tokenKind]string{tokIdent: "identifier", tokString: "string"}[kind]
		}
		return t, syntaxError(t.pos, "expected %s, got %q", want, t.text)
	}
	return t, nil
}

// call is a function call or a bare identifier in the target expression.
type call struct {
	name string
	args []any // *call or string literals
	pos  int
}

func (p *queryParser) parseCall() (*call, error) {
	t, err := p.expect(tokIdent, "")
	if err != nil {
		return nil, err
	}
	c := &call{name: strings.ToUpper(t.text), pos: t.pos}
	if p.peek().text != "(" || p.peek().kind != tokPunct {
		return c, nil
	}
	p.next()
	for p.peek().text != ")" {
		if len(c.args) > 0 {
			if _, err := p.expect(tokPunct, ","); err != nil {
				return nil, err
			}
		}
		if p.peek().kind == tokString {
			c.args = append(c.args, p.next().text)
			continue
		}
		arg, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		c.args = append(c.args, arg)
	}
	p.next()
	return c, nil
}

func (p *queryParser) parse() (AggregateQuery, error) {
	var q AggregateQuery
	if !p.keyword("SELECT") {
		return q, syntaxError(p.peek().pos, "expected SELECT")
	}
	target, err := p.parseCall()
	if err != nil {
		return q, err
	}
	if err := applyTarget(&q, target, false); err != nil {
		return q, err
	}
	if p.keyword("AS") {
		if _, err := p.expect(tokIdent, ""); err != nil {
			return q, err
		}
	}
	if p.keyword("WHERE") {
		for {
			if err := p.parseCondition(&q); err != nil {
				return q, err
			}
			if !p.keyword("AND") {
				break
			}
		}
	}
	if t := p.peek(); t.kind != tokEOF {
		return q, syntaxError(t.pos, "unexpected %q", t.text)
	}
	return q, nil
}

// applyTarget walks the target expression, outermost first.
func applyTarget(q *AggregateQuery, c *call, summed bool) error {
	switch c.name {
	case "NUMBER":
		if len(c.args) != 1 {
			return syntaxError(c.pos, "NUMBER takes one argument")
		}
		inner, ok := c.args[0].(*call)
		if !ok || inner.name != "SUM" {
			return syntaxError(c.pos, "NUMBER applies to SUM")
		}
		return applyTarget(q, inner, summed)
	case "SUM":
		if summed || len(c.args) != 1 {
			return syntaxError(c.pos, "SUM takes one non-aggregate argument")
		}
		inner, ok := c.args[0].(*call)
		if !ok {
			return syntaxError(c.pos, "SUM applies to POSITION")
		}
		return applyTarget(q, inner, true)
	case "CONVERT":
		if !summed {
			return syntaxError(c.pos, "CONVERT must be inside SUM")
		}
		if len(c.args) < 2 || len(c.args) > 3 {
			return syntaxError(c.pos, "CONVERT takes a position, a currency and an optional DATE")
		}
		cur, ok := c.args[1].(string)
		if !ok || cur == "" {
			return syntaxError(c.pos, "CONVERT currency must be a string")
		}
		if len(c.args) == 3 {
			if d, ok := c.args[2].(*call); !ok || d.name != "DATE" || len(d.args) != 0 {
				return syntaxError(c.pos, "CONVERT only converts at the posting DATE")
			}
		}
		q.Currency = cur
		inner, ok := c.args[0].(*call)
		if !ok || inner.name != "POSITION" {
			return syntaxError(c.pos, "CONVERT applies to POSITION")
		}
		return nil
	case "POSITION":
		if !summed {
			return syntaxError(c.pos, "only aggregate queries are supported, wrap POSITION in SUM")
		}
		return nil
	default:
		return syntaxError(c.pos, "unsupported function %s", c.name)
	}
}

func (p *queryParser) parseCondition(q *AggregateQuery) error {
	column, err := p.expect(tokIdent, "")
	if err != nil {
		return err
	}
	op, err := p.expect(tokPunct, "")
	if err != nil {
		return err
	}
	switch strings.ToLower(column.text) {
	case "account":
		if op.text != "~" {
			return syntaxError(op.pos, "account only supports ~")
		}
		pattern, err := p.expect(tokString, "")
		if err != nil {
			return err
		}
		re, err := regexp.Compile("(?i)" + pattern.text)
		if err != nil {
			return syntaxError(pattern.pos, "invalid regular expression: %v", err)
		}
		q.Accounts = append(q.Accounts, re)
		return nil
	case "date":
		on, err := p.parseDate()
		if err != nil {
			return err
		}
		switch op.text {
		case ">=":
			q.From = later(q.From, on)
		case ">":
			q.From = later(q.From, on.Add(1))
		case "<":
			q.Until = earlier(q.Until, on)
		case "<=":
			q.Until = earlier(q.Until, on.Add(1))
		case "=":
			q.From, q.Until = later(q.From, on), earlier(q.Until, on.Add(1))
		default:
			return syntaxError(op.pos, "unsupported date operator %q", op.text)
		}
		return nil
	default:
		return syntaxError(column.pos, "unsupported column %q", column.text)
	}
}

// parseDate reads DATE('2024-01-01') or '2024-01-01'.
func (p *queryParser) parseDate() (date.Date, error) {
	wrapped := p.keyword("DATE")
	if wrapped {
		if _, err := p.expect(tokPunct, "("); err != nil {
			return date.Date{}, err
		}
	}
	lit, err := p.expect(tokString, "")
	if err != nil {
		return date.Date{}, err
	}
	on, err := date.Parse(lit.text)
	if err != nil {
		return date.Date{}, syntaxError(lit.pos, "%v", err)
	}
	if wrapped {
		if _, err := p.expect(tokPunct, ")"); err != nil {
			return date.Date{}, err
		}
	}
	return on, nil
}

func later(a, b date.Date) date.Date {
	if a.IsZero() || b.After(a) {
		return b
	}
	return a
}

func earlier(a, b date.Date) date.Date {
	if a.IsZero() || b.Before(a) {
		return b
	}
	return a
}
