package selector

import (
	"fmt"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// parseSelectorArgPseudos names the pseudo-classes whose argument the parser
// reads as a nested selector list. Everything else keeps its argument text
// verbatim (":nth-child(2n+1)", ":lang(en)").
var parseSelectorArgPseudos = map[string]bool{
	"not": true, "is": true, "matches": true, "any": true, "where": true,
	"current": true, "has": true, "host": true, "host-context": true,
	"slotted": true,
}

// Parser parses selector text into the selector model.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a selector parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("selector-parser")}
}

// Parse parses a single complex selector. Input containing a comma-separated
// list is rejected.
func (p *Parser) Parse(input string) (*ComplexSelector, error) {
	list, err := p.ParseList(input)
	if err != nil {
		return nil, err
	}
	if len(list.Members) != 1 {
		return nil, fmt.Errorf("%w: expected a single selector, got a list of %d", ErrInvalidSelector, len(list.Members))
	}
	return list.Members[0], nil
}

// ParseList parses a comma-separated selector list.
func (p *Parser) ParseList(input string) (SelectorList, error) {
	s := &scanner{toks: lexSelector(input)}

	var members []*ComplexSelector
	lineBreak := false
	for {
		complex, err := p.parseComplex(s, lineBreak)
		if err != nil {
			return SelectorList{}, err
		}
		members = append(members, complex)

		s.skipSpace()
		if s.eof() {
			break
		}
		if s.peek().tt != css.CommaToken {
			return SelectorList{}, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidSelector, s.peek().data, input)
		}
		s.next()
		// A newline after the comma asks the serializer to break the line
		// before the next selector.
		lineBreak = s.peekSpaceHasNewline()
	}
	p.log.Debug("parsed selector list", zap.String("input", input), zap.Int("selectors", len(members)))
	return NewList(members...)
}

func (p *Parser) parseComplex(s *scanner, lineBreak bool) (*ComplexSelector, error) {
	var components []ComplexComponent
	for {
		s.skipSpace()
		if s.eof() || s.peek().tt == css.CommaToken {
			break
		}
		tok := s.peek()
		if tok.tt == css.DelimToken {
			switch tok.data {
			case ">":
				s.next()
				components = append(components, Child)
				continue
			case "+":
				s.next()
				components = append(components, NextSibling)
				continue
			case "~":
				s.next()
				components = append(components, FollowingSibling)
				continue
			}
		}
		compound, err := p.parseCompound(s)
		if err != nil {
			return nil, err
		}
		components = append(components, compound)
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}
	return NewComplex(components, lineBreak)
}

// parseCompound consumes simple selectors until whitespace, a combinator, a
// comma or the end of input.
func (p *Parser) parseCompound(s *scanner) (*CompoundSelector, error) {
	var members []SimpleSelector
	for !s.eof() {
		tok := s.peek()
		switch tok.tt {
		case css.IdentToken:
			s.next()
			members = append(members, &TypeSelector{Name: tok.data})
			continue
		case css.HashToken:
			s.next()
			members = append(members, &IDSelector{Name: strings.TrimPrefix(tok.data, "#")})
			continue
		case css.DelimToken:
			switch tok.data {
			case "*":
				s.next()
				members = append(members, &TypeSelector{Name: "*"})
				continue
			case ".":
				s.next()
				name, err := s.ident()
				if err != nil {
					return nil, err
				}
				members = append(members, &ClassSelector{Name: name})
				continue
			case "%":
				s.next()
				name, err := s.ident()
				if err != nil {
					return nil, err
				}
				members = append(members, &PlaceholderSelector{Name: name})
				continue
			}
		case css.LeftBracketToken:
			attr, err := p.parseAttribute(s)
			if err != nil {
				return nil, err
			}
			members = append(members, attr)
			continue
		case css.ColonToken:
			pseudo, err := p.parsePseudo(s)
			if err != nil {
				return nil, err
			}
			members = append(members, pseudo)
			continue
		}
		break
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: expected a simple selector, got %q", ErrInvalidSelector, s.peek().data)
	}
	return NewCompound(members...)
}

func (p *Parser) parseAttribute(s *scanner) (*AttributeSelector, error) {
	s.next() // "["
	s.skipSpace()
	name, err := s.ident()
	if err != nil {
		return nil, err
	}
	attr := &AttributeSelector{Name: name}

	s.skipSpace()
	if s.eof() {
		return nil, fmt.Errorf("%w: unterminated attribute selector", ErrInvalidSelector)
	}
	switch tok := s.peek(); tok.tt {
	case css.RightBracketToken:
		s.next()
		return attr, nil
	case css.IncludeMatchToken, css.DashMatchToken, css.PrefixMatchToken, css.SuffixMatchToken, css.SubstringMatchToken:
		attr.Op = tok.data
		s.next()
	case css.DelimToken:
		if tok.data != "=" {
			return nil, fmt.Errorf("%w: unexpected %q in attribute selector", ErrInvalidSelector, tok.data)
		}
		attr.Op = "="
		s.next()
	default:
		return nil, fmt.Errorf("%w: unexpected %q in attribute selector", ErrInvalidSelector, tok.data)
	}

	s.skipSpace()
	if s.eof() {
		return nil, fmt.Errorf("%w: unterminated attribute selector", ErrInvalidSelector)
	}
	switch tok := s.peek(); tok.tt {
	case css.IdentToken, css.StringToken, css.NumberToken:
		attr.Value = tok.data
		s.next()
	default:
		return nil, fmt.Errorf("%w: unexpected %q as attribute value", ErrInvalidSelector, tok.data)
	}

	s.skipSpace()
	if s.eof() || s.peek().tt != css.RightBracketToken {
		return nil, fmt.Errorf("%w: unterminated attribute selector", ErrInvalidSelector)
	}
	s.next()
	return attr, nil
}

func (p *Parser) parsePseudo(s *scanner) (*PseudoSelector, error) {
	s.next() // ":"
	pseudo := &PseudoSelector{}
	if !s.eof() && s.peek().tt == css.ColonToken {
		s.next()
		pseudo.Element = true
	}
	if s.eof() {
		return nil, fmt.Errorf("%w: expected pseudo selector name", ErrInvalidSelector)
	}

	switch tok := s.peek(); tok.tt {
	case css.IdentToken:
		s.next()
		pseudo.Name = tok.data
		return pseudo, nil
	case css.FunctionToken:
		s.next()
		pseudo.Name = strings.TrimSuffix(tok.data, "(")
		raw, err := s.balancedArgument()
		if err != nil {
			return nil, err
		}
		if parseSelectorArgPseudos[normalizedPseudoName(pseudo.Name)] {
			inner, err := p.ParseList(raw)
			if err != nil {
				return nil, fmt.Errorf("in argument of :%s: %w", pseudo.Name, err)
			}
			pseudo.Selector = &inner
		} else {
			pseudo.Argument = raw
		}
		return pseudo, nil
	default:
		return nil, fmt.Errorf("%w: expected pseudo selector name, got %q", ErrInvalidSelector, tok.data)
	}
}

// token is one lexed selector token.
type token struct {
	tt   css.TokenType
	data string
}

// lexSelector tokenizes the input, dropping comments.
func lexSelector(input string) []token {
	l := css.NewLexer(parse.NewInputString(input))
	var out []token
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return out
		case css.CommentToken:
			continue
		default:
			out = append(out, token{tt: tt, data: string(data)})
		}
	}
}

// scanner is a cursor over lexed tokens.
type scanner struct {
	toks []token
	pos  int
}

func (s *scanner) eof() bool { return s.pos >= len(s.toks) }

func (s *scanner) peek() token {
	if s.eof() {
		return token{tt: css.ErrorToken}
	}
	return s.toks[s.pos]
}

func (s *scanner) next() token {
	tok := s.peek()
	if !s.eof() {
		s.pos++
	}
	return tok
}

func (s *scanner) skipSpace() {
	for !s.eof() && s.toks[s.pos].tt == css.WhitespaceToken {
		s.pos++
	}
}

// peekSpaceHasNewline reports whether the whitespace run at the cursor
// contains a newline. The cursor is left before any non-space token.
func (s *scanner) peekSpaceHasNewline() bool {
	hasNewline := false
	for !s.eof() && s.toks[s.pos].tt == css.WhitespaceToken {
		if strings.ContainsAny(s.toks[s.pos].data, "\r\n") {
			hasNewline = true
		}
		s.pos++
	}
	return hasNewline
}

func (s *scanner) ident() (string, error) {
	if s.eof() || s.peek().tt != css.IdentToken {
		return "", fmt.Errorf("%w: expected identifier, got %q", ErrInvalidSelector, s.peek().data)
	}
	return s.next().data, nil
}

// balancedArgument consumes tokens up to the parenthesis closing the current
// function and returns their text, with whitespace runs collapsed to single
// spaces.
func (s *scanner) balancedArgument() (string, error) {
	var b strings.Builder
	depth := 1
	for !s.eof() {
		tok := s.next()
		switch tok.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return strings.TrimSpace(b.String()), nil
			}
		case css.WhitespaceToken:
			b.WriteByte(' ')
			continue
		}
		b.WriteString(tok.data)
	}
	return "", fmt.Errorf("%w: unbalanced parentheses in pseudo argument", ErrInvalidSelector)
}
