package stub

import (
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"strings"

	"omibyte.io/arm9rt/rt"
)

// renamePrefix hides the user function behind an internal name; the fixed
// external symbol is bound to the trampoline instead.
const renamePrefix = "_arm9rt_"

// Stub is a validated annotated declaration, ready for generation. Analyze
// mutates the declaration in place: the function is renamed, extracted
// items are removed from its body, and one exclusive pointer parameter per
// item is appended in extraction order.
type Stub struct {
	Role      Role
	Exception rt.Exception // meaningful for RoleException only
	Decl      *ast.FuncDecl
	Items     []Item

	// Start and End span the original declaration, doc group included,
	// so the builder can splice the generated text in its place.
	Start, End token.Pos

	origName string
	doc      []string // documentation lines kept from the declaration
	hints    []string // carried hint directives
}

// Analyze runs the full pipeline on one declaration: directive parsing,
// signature validation, and persistent state extraction. It returns nil for
// a declaration that carries no annotation. On error nothing is mutated
// usefully and no stub must be emitted.
func Analyze(fset *token.FileSet, decl *ast.FuncDecl) (*Stub, error) {
	role, hints, err := parseDirectives(fset, decl)
	if err != nil {
		return nil, err
	}
	if role == RoleNone {
		return nil, nil
	}

	if err := validate(fset, decl, role); err != nil {
		return nil, err
	}

	items, err := extract(fset, decl.Body)
	if err != nil {
		return nil, err
	}

	s := &Stub{
		Role:     role,
		Decl:     decl,
		Items:    items,
		Start:    decl.Doc.Pos(),
		End:      decl.End(),
		origName: decl.Name.Name,
		hints:    hints,
	}
	if role == RoleException {
		s.Exception, _ = rt.ExceptionByName(s.origName)
	}
	for _, comment := range decl.Doc.List {
		if directiveName(comment.Text) == "" {
			s.doc = append(s.doc, comment.Text)
		}
	}

	// Rename the user function and hand it the extracted items as
	// exclusive references, in extraction order.
	decl.Doc = nil
	decl.Name = ast.NewIdent(renamePrefix + s.origName)
	if decl.Type.Params == nil {
		decl.Type.Params = &ast.FieldList{}
	}
	for _, item := range items {
		decl.Type.Params.List = append(decl.Type.Params.List, &ast.Field{
			Names: []*ast.Ident{ast.NewIdent(item.Name)},
			Type:  &ast.StarExpr{X: item.Type},
		})
	}

	return s, nil
}

// ExportSymbol is the fixed external symbol the trampoline is bound to:
// "main" for the entry role, the literal kind name for an exception.
func (s *Stub) ExportSymbol() string {
	if s.Role == RoleEntry {
		return "main"
	}
	return s.Exception.String()
}

// TrampolineName is the hidden trampoline's identifier.
func (s *Stub) TrampolineName() string {
	return renamePrefix + s.origName + "_trampoline"
}

func (s *Stub) storageName(item Item) string {
	return renamePrefix + s.origName + "_" + item.Name
}

// Generate renders the stub: program-lifetime storage for each extracted
// item, the exported trampoline, the registration hook, and the renamed
// user function. The output is a fragment of a Go source file; the builder
// splices it in place of the original declaration and formats the result.
func (s *Stub) Generate(fset *token.FileSet) ([]byte, error) {
	var w strings.Builder

	for _, item := range s.Items {
		if item.Doc != nil {
			for _, comment := range item.Doc.List {
				w.WriteString(comment.Text + "\n")
			}
		}
		typ, err := exprString(fset, item.Type)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&w, "var %s %s", s.storageName(item), typ)
		if item.Init != nil {
			init, err := exprString(fset, item.Init)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(&w, " = %s", init)
		}
		w.WriteString("\n\n")
	}

	switch s.Role {
	case RoleEntry:
		w.WriteString("// References handed to the entry point stay valid for the whole\n")
		w.WriteString("// program: it is invoked once and never returns.\n")
	case RoleException:
		w.WriteString("// Each invocation receives a fresh exclusive reference to the same\n")
		w.WriteString("// storage; this is sound only while the interrupt masking discipline\n")
		w.WriteString("// keeps the handler from reentering.\n")
	}
	for _, hint := range s.hints {
		w.WriteString(hint + "\n")
	}
	fmt.Fprintf(&w, "//go:export %s %s\n", s.TrampolineName(), s.ExportSymbol())
	fmt.Fprintf(&w, "func %s() {\n", s.TrampolineName())
	fmt.Fprintf(&w, "\t%s(", renamePrefix+s.origName)
	for i, item := range s.Items {
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString("&" + s.storageName(item))
	}
	w.WriteString(")\n}\n\n")

	w.WriteString("func init() {\n")
	if s.Role == RoleEntry {
		fmt.Fprintf(&w, "\trt.RegisterEntry(%s)\n", s.TrampolineName())
	} else {
		fmt.Fprintf(&w, "\trt.RegisterHandler(rt.%s, %s)\n", s.Exception, s.TrampolineName())
	}
	w.WriteString("}\n\n")

	for _, line := range s.doc {
		w.WriteString(line + "\n")
	}
	for _, hint := range s.hints {
		w.WriteString(hint + "\n")
	}
	if err := printer.Fprint(&w, fset, s.Decl); err != nil {
		return nil, err
	}
	w.WriteString("\n")

	return []byte(w.String()), nil
}

func exprString(fset *token.FileSet, expr ast.Expr) (string, error) {
	var b strings.Builder
	if err := printer.Fprint(&b, fset, expr); err != nil {
		return "", err
	}
	return b.String(), nil
}
