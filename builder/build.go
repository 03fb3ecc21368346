package builder

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"

	"omibyte.io/arm9rt/layout"
	"omibyte.io/arm9rt/rt"
	"omibyte.io/arm9rt/stub"
)

// BuildPackages transforms the annotated packages and stages the generated
// sources into the output directory. The transformation enforces the one
// whole-program rule the per-declaration pipeline cannot: exactly one entry
// point, and at most one handler per exception kind.
func BuildPackages(ctx context.Context, options Options) error {
	if len(options.Packages) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		options.Packages = []string{cwd}
	}
	if options.Output == "" {
		options.Output = "build"
	}
	if info, err := os.Stat(options.Output); err == nil && !info.IsDir() {
		return fmt.Errorf("%w: %s is a file", ErrUnexpectedOutputPath, options.Output)
	}

	fset := token.NewFileSet()
	programs := make([]*Program, 0, len(options.Packages))
	for _, dir := range options.Packages {
		program := newProgram(fset, dir)
		if err := program.parse(options.BuildTags); err != nil {
			return err
		}
		programs = append(programs, program)
	}

	programs, err := orderPrograms(programs)
	if err != nil {
		return err
	}

	var errs []error
	for _, program := range programs {
		if err := program.analyze(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return errors.Join(ErrParserError, err)
	}

	if err := checkProgramRules(fset, programs); err != nil {
		return err
	}
	if err := checkLayout(options, programs); err != nil {
		return err
	}

	for _, program := range programs {
		if err := ctx.Err(); err != nil {
			return err
		}
		outDir := options.Output
		if len(programs) > 1 {
			outDir = filepath.Join(outDir, filepath.Base(program.path))
		}
		if err := program.stage(outDir); err != nil {
			return err
		}
	}

	return nil
}

// checkProgramRules enforces the cross-declaration invariants: one entry
// point per program, one handler per exception kind.
func checkProgramRules(fset *token.FileSet, programs []*Program) error {
	var entries []token.Position
	handlers := map[rt.Exception]token.Position{}
	var errs []error

	for _, program := range programs {
		for _, s := range program.allStubs() {
			pos := fset.Position(s.Start)
			switch s.Role {
			case stub.RoleEntry:
				entries = append(entries, pos)
			case stub.RoleException:
				if prev, ok := handlers[s.Exception]; ok {
					errs = append(errs, fmt.Errorf("%w: %s at %s, previously at %s",
						ErrDuplicateHandler, s.Exception, pos, prev))
					continue
				}
				handlers[s.Exception] = pos
			}
		}
	}

	switch len(entries) {
	case 0:
		errs = append(errs, ErrNoEntryPoint)
	case 1:
	default:
		for _, pos := range entries[1:] {
			errs = append(errs, fmt.Errorf("%w: at %s, first at %s",
				ErrMultipleEntryPoints, pos, entries[0]))
		}
	}

	return errors.Join(errs...)
}

// checkLayout validates the memory layout the program will be linked
// against, from the command line option or a //arm9:layout pragma. With
// neither, the built-in default layout applies and needs no check.
func checkLayout(options Options, programs []*Program) error {
	paths := map[string]bool{}
	if options.Layout != "" {
		paths[options.Layout] = true
	} else {
		for _, program := range programs {
			if program.layoutFile != "" {
				paths[program.layoutFile] = true
			}
		}
	}

	for path := range paths {
		if _, err := layout.LoadFile(path); err != nil {
			return fmt.Errorf("layout %s: %w", path, err)
		}
	}
	return nil
}
