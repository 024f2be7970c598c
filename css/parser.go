package css

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser reads plain, already-final CSS text into the tree model, so tooling
// and tests can round-trip real input through Render. It performs no
// evaluation: variables and expressions are not this layer's business.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a plain-CSS reader.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse reads CSS text into a stylesheet tree. Parsing is best effort:
// unparsable constructs are skipped with a debug log, mirroring how browsers
// treat unknown CSS. The optional source identifies the input in logs.
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("parsing css", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)
	sheet := &Stylesheet{}

	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("css parse error", zap.Error(err))
			}
			return sheet

		case css.CommentGrammar:
			sheet.Children = append(sheet.Children, &Comment{Text: string(data)})

		case css.BeginAtRuleGrammar:
			sheet.Children = append(sheet.Children, p.parseAtRule(parser, string(data)))

		case css.AtRuleGrammar:
			sheet.Children = append(sheet.Children, &AtRule{
				Name:  strings.TrimPrefix(string(data), "@"),
				Value: tokensText(parser.Values()),
			})

		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			sheet.Children = append(sheet.Children, &StyleRule{
				Selector: selectorText(data, parser.Values()),
				Block:    p.parseDeclarations(parser),
			})
		}
	}
}

// parseAtRule handles an at-rule with a block. @media gets the dedicated
// node; everything else becomes a generic AtRule.
func (p *Parser) parseAtRule(parser *css.Parser, name string) Node {
	name = strings.TrimPrefix(name, "@")
	if strings.EqualFold(name, "media") {
		queries := p.parseMediaQueries(parser.Values())
		return &MediaRule{Queries: queries, Block: p.parseBlock(parser)}
	}
	return &AtRule{
		Name:     name,
		Value:    tokensText(parser.Values()),
		HasBlock: true,
		Block:    p.parseBlock(parser),
	}
}

// parseBlock reads an at-rule body until its end: nested rulesets, nested
// at-rules and direct declarations (@font-face style) all occur here.
func (p *Parser) parseBlock(parser *css.Parser) []Node {
	var children []Node
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return children

		case css.CommentGrammar:
			children = append(children, &Comment{Text: string(data)})

		case css.BeginAtRuleGrammar:
			children = append(children, p.parseAtRule(parser, string(data)))

		case css.BeginRulesetGrammar:
			children = append(children, &StyleRule{
				Selector: selectorText(data, parser.Values()),
				Block:    p.parseDeclarations(parser),
			})

		case css.DeclarationGrammar:
			children = append(children, &Declaration{
				Name:  string(data),
				Value: p.parseValue(parser.Values()),
			})
		}
	}
}

// parseDeclarations reads a ruleset body until it closes.
func (p *Parser) parseDeclarations(parser *css.Parser) []Node {
	var children []Node
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return children

		case css.CommentGrammar:
			children = append(children, &Comment{Text: string(data)})

		case css.DeclarationGrammar:
			children = append(children, &Declaration{
				Name:  string(data),
				Value: p.parseValue(parser.Values()),
			})

		case css.CustomPropertyGrammar:
			// Custom properties carry unevaluated text, skip them.
			p.log.Debug("skipping custom property", zap.String("name", string(data)))
		}
	}
}

// valueUnit is one space-separated piece of a declaration value; a function
// call with its arguments is a single unit.
type valueUnit struct {
	tt  css.TokenType
	raw string
}

// parseValue converts declaration tokens to a value tree: comma-separated
// runs become a comma list, multi-unit runs a space list, single units a
// scalar.
func (p *Parser) parseValue(tokens []css.Token) Value {
	runs := splitTokens(tokens, css.CommaToken)
	values := make([]Value, 0, len(runs))
	for _, run := range runs {
		units := valueUnits(run)
		switch len(units) {
		case 0:
			continue
		case 1:
			values = append(values, p.scalarValue(units[0]))
		default:
			items := make([]Value, len(units))
			for i, u := range units {
				items[i] = p.scalarValue(u)
			}
			values = append(values, List{Separator: SeparatorSpace, Items: items})
		}
	}
	switch len(values) {
	case 0:
		return Ident("")
	case 1:
		return values[0]
	default:
		return List{Separator: SeparatorComma, Items: values}
	}
}

func (p *Parser) scalarValue(u valueUnit) Value {
	switch u.tt {
	case css.NumberToken:
		if f, err := strconv.ParseFloat(u.raw, 64); err == nil {
			return Number(f)
		}
		return Ident(u.raw)
	case css.IdentToken:
		switch u.raw {
		case "true":
			return Bool(true)
		case "false":
			return Bool(false)
		}
		return Ident(u.raw)
	case css.HashToken:
		if c, err := csscolorparser.Parse(u.raw); err == nil {
			return Color{C: c}
		}
		return Ident(u.raw)
	case css.FunctionToken:
		if isColorFunction(u.raw) {
			if c, err := csscolorparser.Parse(u.raw); err == nil {
				return Color{C: c}
			}
		}
		return Ident(u.raw)
	case css.StringToken:
		return Str{Text: unquote(u.raw), Quoted: true}
	default:
		return Ident(u.raw)
	}
}

func isColorFunction(raw string) bool {
	lower := strings.ToLower(raw)
	for _, prefix := range []string{"rgb(", "rgba(", "hsl(", "hsla(", "hwb("} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// valueUnits groups a token run into units, folding function calls into one
// unit each.
func valueUnits(tokens []css.Token) []valueUnit {
	var units []valueUnit
	depth := 0
	for _, t := range tokens {
		if depth > 0 {
			units[len(units)-1].raw += string(t.Data)
			switch t.TokenType {
			case css.FunctionToken, css.LeftParenthesisToken:
				depth++
			case css.RightParenthesisToken:
				depth--
			}
			continue
		}
		switch t.TokenType {
		case css.WhitespaceToken:
			continue
		case css.FunctionToken:
			units = append(units, valueUnit{tt: css.FunctionToken, raw: string(t.Data)})
			depth++
		default:
			units = append(units, valueUnit{tt: t.TokenType, raw: string(t.Data)})
		}
	}
	return units
}

// splitTokens splits a token slice on sep at parenthesis depth zero.
func splitTokens(tokens []css.Token, sep css.TokenType) [][]css.Token {
	var out [][]css.Token
	var current []css.Token
	depth := 0
	for _, t := range tokens {
		switch t.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
		}
		if t.TokenType == sep && depth == 0 {
			out = append(out, current)
			current = nil
			continue
		}
		current = append(current, t)
	}
	out = append(out, current)
	return out
}

// parseMediaQueries reads the tokens between "@media" and the block.
func (p *Parser) parseMediaQueries(tokens []css.Token) []MediaQuery {
	var queries []MediaQuery
	for _, qtoks := range splitTokens(tokens, css.CommaToken) {
		q := p.parseMediaQuery(qtoks)
		if q.Modifier != "" || q.Type != "" || len(q.Features) > 0 {
			queries = append(queries, q)
		}
	}
	return queries
}

// parseMediaQuery parses "[modifier] [type] [and (feature)]...".
func (p *Parser) parseMediaQuery(tokens []css.Token) MediaQuery {
	q := MediaQuery{}
	units := mediaUnits(tokens)
	i := 0
	if i < len(units) && (units[i] == "not" || units[i] == "only") {
		q.Modifier = units[i]
		i++
	}
	if i < len(units) && !strings.HasPrefix(units[i], "(") && units[i] != "and" {
		q.Type = units[i]
		i++
	}
	for ; i < len(units); i++ {
		if units[i] == "and" {
			continue
		}
		q.Features = append(q.Features, units[i])
	}
	return q
}

// mediaUnits flattens query tokens into lowercased keywords and complete
// parenthesized feature clauses.
func mediaUnits(tokens []css.Token) []string {
	var units []string
	depth := 0
	for _, t := range tokens {
		if depth > 0 {
			if t.TokenType == css.WhitespaceToken {
				units[len(units)-1] += " "
			} else {
				units[len(units)-1] += string(t.Data)
			}
			switch t.TokenType {
			case css.FunctionToken, css.LeftParenthesisToken:
				depth++
			case css.RightParenthesisToken:
				depth--
			}
			continue
		}
		switch t.TokenType {
		case css.WhitespaceToken:
			continue
		case css.LeftParenthesisToken:
			units = append(units, "(")
			depth++
		case css.IdentToken:
			units = append(units, strings.ToLower(string(t.Data)))
		}
	}
	return units
}

// tokensText renders tokens back to text with whitespace runs collapsed.
func tokensText(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// selectorText reassembles the selector exactly as the style rule will emit
// it, with interior whitespace normalized to single spaces.
func selectorText(data []byte, values []css.Token) string {
	var b strings.Builder
	b.Write(data)
	for _, v := range values {
		b.Write(v.Data)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// unquote removes surrounding quotes from a string token.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
