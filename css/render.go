package css

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCSSValue is returned when a value cannot be rendered as valid
// CSS in any context. It indicates a defect in the tree producer, not a
// user-recoverable condition; Render surfaces it unchanged.
var ErrInvalidCSSValue = errors.New("invalid css value")

// indentUnit is emitted once per nesting level.
const indentUnit = "  "

// Render serializes an evaluated stylesheet tree to CSS text. The result is
// trimmed of surrounding whitespace and, when any non-ASCII byte appears in
// the body, prefixed with a UTF-8 charset declaration.
func Render(sheet *Stylesheet) (string, error) {
	var r renderer
	if err := r.visitStylesheet(sheet); err != nil {
		return "", err
	}
	out := strings.TrimSpace(r.buf.String())
	if !isASCII(out) {
		out = "@charset \"UTF-8\";\n" + out
	}
	return out, nil
}

// renderer carries the only mutable state of an emission: the output buffer
// and the indentation counter. A renderer serves a single Render call.
type renderer struct {
	buf    strings.Builder
	indent int
}

func (r *renderer) visitStylesheet(sheet *Stylesheet) error {
	for _, child := range sheet.Children {
		if err := r.visit(child); err != nil {
			return err
		}
		r.buf.WriteByte('\n')
	}
	return nil
}

func (r *renderer) visit(node Node) error {
	switch n := node.(type) {
	case *Stylesheet:
		return r.visitStylesheet(n)
	case *Comment:
		r.buf.WriteString(n.Text)
		return nil
	case *AtRule:
		return r.visitAtRule(n)
	case *MediaRule:
		return r.visitMediaRule(n)
	case *StyleRule:
		return r.visitStyleRule(n)
	case *Declaration:
		return r.visitDeclaration(n)
	default:
		return fmt.Errorf("unknown css node %T", node)
	}
}

func (r *renderer) visitAtRule(rule *AtRule) error {
	r.buf.WriteByte('@')
	r.buf.WriteString(rule.Name)
	if rule.Value != "" {
		r.buf.WriteByte(' ')
		r.buf.WriteString(rule.Value)
	}
	if !rule.HasBlock {
		r.buf.WriteByte(';')
		return nil
	}
	r.buf.WriteByte(' ')
	return r.visitBlock(rule.Block)
}

func (r *renderer) visitMediaRule(rule *MediaRule) error {
	r.buf.WriteString("@media ")
	for _, q := range rule.Queries {
		r.visitMediaQuery(q)
	}
	r.buf.WriteByte(' ')
	return r.visitBlock(rule.Block)
}

func (r *renderer) visitMediaQuery(q MediaQuery) {
	if q.Modifier != "" {
		r.buf.WriteString(q.Modifier)
		r.buf.WriteByte(' ')
	}
	if q.Type != "" {
		r.buf.WriteString(q.Type)
		if len(q.Features) > 0 {
			r.buf.WriteString(" and ")
		}
	}
	for i, f := range q.Features {
		if i > 0 {
			r.buf.WriteString(" and ")
		}
		r.buf.WriteString(f)
	}
}

func (r *renderer) visitStyleRule(rule *StyleRule) error {
	r.buf.WriteString(rule.Selector)
	r.buf.WriteByte(' ')
	if err := r.visitBlock(rule.Block); err != nil {
		return err
	}
	// One blank line after every style rule. Group-aware spacing (blank
	// line only after the last rule of a group) is a known refinement.
	r.buf.WriteByte('\n')
	return nil
}

func (r *renderer) visitDeclaration(decl *Declaration) error {
	text, err := renderValue(decl.Value)
	if err != nil {
		return fmt.Errorf("declaration %q: %w", decl.Name, err)
	}
	r.buf.WriteString(decl.Name)
	r.buf.WriteString(": ")
	r.buf.WriteString(text)
	r.buf.WriteByte(';')
	return nil
}

// visitBlock renders "{ ... }" with every child indented one level deeper.
// The indentation counter is restored even when a child fails to render.
func (r *renderer) visitBlock(children []Node) error {
	r.buf.WriteString("{\n")
	r.indent++
	err := func() error {
		for _, child := range children {
			r.writeIndent()
			if err := r.visit(child); err != nil {
				return err
			}
			r.buf.WriteByte('\n')
		}
		return nil
	}()
	r.indent--
	if err != nil {
		return err
	}
	r.writeIndent()
	r.buf.WriteByte('}')
	return nil
}

func (r *renderer) writeIndent() {
	for i := 0; i < r.indent; i++ {
		r.buf.WriteString(indentUnit)
	}
}

// renderValue produces the text fragment for a value. It is a pure function
// of the value.
func renderValue(v Value) (string, error) {
	switch val := v.(type) {
	case Bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case Color:
		return val.C.HexString(), nil
	case Ident:
		// CSS identifiers cannot contain raw newlines.
		return strings.ReplaceAll(string(val), "\n", " "), nil
	case List:
		return renderList(val)
	case Number:
		return formatNumber(float64(val)), nil
	case Str:
		if !val.Quoted {
			return val.Text, nil
		}
		return Quote(val.Text, false), nil
	default:
		return "", fmt.Errorf("%w: unknown value %T", ErrInvalidCSSValue, v)
	}
}

func renderList(l List) (string, error) {
	if len(l.Items) == 0 {
		return "", fmt.Errorf("%w: empty list", ErrInvalidCSSValue)
	}
	parts := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		if item.IsBlank() {
			continue
		}
		text, err := renderValue(item)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: list has no visible elements", ErrInvalidCSSValue)
	}
	sep := " "
	if l.Separator == SeparatorComma {
		sep = ", "
	}
	return strings.Join(parts, sep), nil
}

// formatNumber renders a number in plain decimal form. Exact precision and
// exponent suppression rules are pinned down by conformance fixtures later.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
