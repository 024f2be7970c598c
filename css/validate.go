package css

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate walks a stylesheet tree and reports every contract violation the
// renderer would trip over, combined into a single error. Rendering aborts
// on the first defect; Validate lets a caller surface all of them at once.
func Validate(sheet *Stylesheet) error {
	return validateNodes("", sheet.Children)
}

func validateNodes(path string, nodes []Node) error {
	var errs error
	for _, node := range nodes {
		errs = multierr.Append(errs, validateNode(path, node))
	}
	return errs
}

func validateNode(path string, node Node) error {
	switch n := node.(type) {
	case *Stylesheet:
		return fmt.Errorf("%snested stylesheet node", path)
	case *Comment:
		return nil
	case *AtRule:
		if n.Name == "" {
			return fmt.Errorf("%sat-rule without a name", path)
		}
		return validateNodes(path+"@"+n.Name+"/", n.Block)
	case *MediaRule:
		var errs error
		if len(n.Queries) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("%smedia rule without queries", path))
		}
		return multierr.Append(errs, validateNodes(path+"@media/", n.Block))
	case *StyleRule:
		var errs error
		if n.Selector == "" {
			errs = multierr.Append(errs, fmt.Errorf("%sstyle rule without a selector", path))
		}
		return multierr.Append(errs, validateNodes(path+n.Selector+"/", n.Block))
	case *Declaration:
		if n.Value == nil {
			return fmt.Errorf("%sdeclaration %q without a value", path, n.Name)
		}
		return validateValue(path, n.Name, n.Value)
	default:
		return fmt.Errorf("%sunknown node %T", path, node)
	}
}

func validateValue(path, name string, v Value) error {
	list, ok := v.(List)
	if !ok {
		return nil
	}
	if len(list.Items) == 0 {
		return fmt.Errorf("%sdeclaration %q: %w: empty list", path, name, ErrInvalidCSSValue)
	}
	var errs error
	visible := 0
	for _, item := range list.Items {
		if !item.IsBlank() {
			visible++
		}
		errs = multierr.Append(errs, validateValue(path, name, item))
	}
	if visible == 0 {
		errs = multierr.Append(errs, fmt.Errorf("%sdeclaration %q: %w: list has no visible elements", path, name, ErrInvalidCSSValue))
	}
	return errs
}
