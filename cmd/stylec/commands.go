package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylec/config"
	"stylec/css"
	"stylec/selector"
	"stylec/state"
)

// formatFiles reads every input, builds the tree and reprints it in canonical
// form. With --check the tree is validated instead and every defect reported.
func formatFiles(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() == 0 {
		return errors.New("no input files")
	}

	parser := css.NewParser(env.Log)
	check := cmd.Bool("check")

	var errs error
	for i, name := range cmd.Args().Slice() {
		data, err := readInput(name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to read '%s': %w", name, err))
			continue
		}
		sheet := parser.Parse(data, name)

		if check {
			if err := css.Validate(sheet); err != nil {
				for _, e := range multierr.Errors(err) {
					env.Log.Warn("Validation failed", zap.String("file", name), zap.Error(e))
				}
				errs = multierr.Append(errs, fmt.Errorf("'%s' has %d problem(s)", name, len(multierr.Errors(err))))
			}
			continue
		}

		out, err := css.Render(sheet)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to render '%s': %w", name, err))
			continue
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(out)
	}
	return errs
}

// printSpecificity parses each argument as a selector list and prints the
// specificity range of every member.
func printSpecificity(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() == 0 {
		return errors.New("no selectors given")
	}

	parser := selector.NewParser(env.Log)

	var errs error
	for _, arg := range cmd.Args().Slice() {
		list, err := parser.ParseList(arg)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to parse '%s': %w", arg, err))
			continue
		}
		for _, sel := range list.Members {
			min, max := sel.MinSpecificity(), sel.MaxSpecificity()
			if min == max {
				fmt.Printf("%s: %d\n", sel, min)
			} else {
				fmt.Printf("%s: %d..%d\n", sel, min, max)
			}
		}
	}
	return errs
}

// checkSuperselector decides whether the first selector list matches
// everything the second one does.
func checkSuperselector(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() != 2 {
		return errors.New("expected exactly two selectors")
	}

	parser := selector.NewParser(env.Log)

	a, err := parser.ParseList(cmd.Args().Get(0))
	if err != nil {
		return fmt.Errorf("unable to parse '%s': %w", cmd.Args().Get(0), err)
	}
	b, err := parser.ParseList(cmd.Args().Get(1))
	if err != nil {
		return fmt.Errorf("unable to parse '%s': %w", cmd.Args().Get(1), err)
	}

	if !a.IsSuperselector(b) {
		fmt.Println("false")
		return fmt.Errorf("'%s' is not a superselector of '%s'", a, b)
	}
	fmt.Println("true")
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var err error
	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	cfg := env.Cfg
	state := "actual"
	if cmd.Bool("default") {
		cfg = config.Default()
		state = "default"
	}
	data, err := config.Dump(cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}
