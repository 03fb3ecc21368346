package stub

import (
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/exp/slices"
)

// Role tells which annotation a declaration carries.
type Role int

const (
	RoleNone Role = iota
	RoleEntry
	RoleException
)

func (r Role) String() string {
	switch r {
	case RoleEntry:
		return "entry"
	case RoleException:
		return "exception"
	}
	return "none"
}

const (
	entryDirective     = "arm9:entry"
	exceptionDirective = "arm9:exception"
)

// Directives permitted on an annotated declaration besides the annotation
// itself: conditional compilation, link placement, lint control, and the two
// hardware hints. Anything else fails with ErrDisallowedAttribute.
var whitelist = []string{
	"go:build",
	"arm9:section",
	"arm9:cold",
	"arm9:noreturn",
	"nolint",
}

// carried are the hint directives the generator forwards onto the emitted
// trampoline.
var carried = []string{"arm9:section", "arm9:cold", "arm9:noreturn"}

// directiveName extracts the "tool:name" part of a directive comment, or ""
// for ordinary documentation. Following the convention go/ast uses, a
// directive has no space after "//".
func directiveName(text string) string {
	if !strings.HasPrefix(text, "//") {
		return ""
	}
	body := text[2:]
	if body == "" || body[0] == ' ' || body[0] == '\t' {
		return ""
	}
	name, _, _ := strings.Cut(body, " ")
	if !strings.Contains(name, ":") && name != "nolint" {
		return ""
	}
	// nolint directives carry their linters after a colon.
	if linter, _, ok := strings.Cut(name, ":"); ok && linter == "nolint" {
		return "nolint"
	}
	return name
}

// Annotated reports the role a declaration is annotated with, without
// validating anything else.
func Annotated(decl *ast.FuncDecl) (Role, bool) {
	if decl.Doc == nil {
		return RoleNone, false
	}
	for _, comment := range decl.Doc.List {
		switch directiveName(comment.Text) {
		case entryDirective:
			return RoleEntry, true
		case exceptionDirective:
			return RoleException, true
		}
	}
	return RoleNone, false
}

// parseDirectives classifies the declaration's doc group: determines the
// role, rejects annotation arguments, enforces the whitelist, and collects
// the hint directives to carry onto the trampoline. An unannotated
// declaration is left entirely alone; whatever directives it carries are
// none of this package's business.
func parseDirectives(fset *token.FileSet, decl *ast.FuncDecl) (Role, []string, error) {
	role := RoleNone
	var hints []string

	if decl.Doc == nil {
		return RoleNone, nil, nil
	}

	for _, comment := range decl.Doc.List {
		name := directiveName(comment.Text)
		if name != entryDirective && name != exceptionDirective {
			continue
		}
		if role != RoleNone {
			return RoleNone, nil, diag(fset, comment.Pos(), ErrDisallowedAttribute,
				"declaration carries more than one annotation")
		}
		if rest := strings.TrimSpace(strings.TrimPrefix(comment.Text, "//"+name)); rest != "" {
			return RoleNone, nil, diag(fset, comment.Pos(), ErrUnexpectedArguments, name)
		}
		if name == entryDirective {
			role = RoleEntry
		} else {
			role = RoleException
		}
	}
	if role == RoleNone {
		return RoleNone, nil, nil
	}

	for _, comment := range decl.Doc.List {
		name := directiveName(comment.Text)
		if name == "" || name == entryDirective || name == exceptionDirective {
			continue
		}
		if !slices.Contains(whitelist, name) {
			return RoleNone, nil, directiveError(fset, comment.Pos(), role)
		}
		if slices.Contains(carried, name) {
			hints = append(hints, comment.Text)
		}
	}

	return role, hints, nil
}

func directiveError(fset *token.FileSet, pos token.Pos, role Role) *Diagnostic {
	if role == RoleEntry {
		return diag(fset, pos, ErrDisallowedAttribute, "this directive is not allowed on the entry point")
	}
	return diag(fset, pos, ErrDisallowedAttribute, "this directive is not allowed on an exception handler")
}
