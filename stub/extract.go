package stub

import (
	"go/ast"
	"go/token"
)

// Item is one extracted persistent state item: a mutable declaration lifted
// out of the function body into program-lifetime storage.
type Item struct {
	Name string
	Type ast.Expr
	Init ast.Expr // nil means the zero value
	Doc  *ast.CommentGroup
}

// extract scans the body's statements from the start. A const declaration
// is an immutable persistent declaration: it stays in place and scanning
// continues. A `var NAME TYPE [= INIT]` declaration is a mutable persistent
// declaration: it is removed from the body and recorded in order of first
// appearance. The first statement that is neither stops the scan; every
// statement from there on, persistent declarations included, is kept
// verbatim. The body is rewritten in place.
func extract(fset *token.FileSet, body *ast.BlockStmt) ([]Item, error) {
	var items []Item
	var kept []ast.Stmt
	seen := map[string]bool{}

	i := 0
	for ; i < len(body.List); i++ {
		stmt := body.List[i]
		declStmt, ok := stmt.(*ast.DeclStmt)
		if !ok {
			break
		}
		gen, ok := declStmt.Decl.(*ast.GenDecl)
		if !ok {
			break
		}

		if gen.Tok == token.CONST {
			kept = append(kept, stmt)
			continue
		}
		if gen.Tok != token.VAR {
			break
		}
		specs, ok := persistentSpecs(gen)
		if !ok {
			break
		}

		for _, spec := range specs {
			for j, name := range spec.Names {
				if seen[name.Name] {
					return nil, diag(fset, name.Pos(), ErrDuplicateStaticName,
						"the name "+name.Name+" is defined multiple times")
				}
				seen[name.Name] = true

				item := Item{
					Name: name.Name,
					Type: spec.Type,
					Doc:  gen.Doc,
				}
				if len(spec.Values) == len(spec.Names) {
					item.Init = spec.Values[j]
				}
				items = append(items, item)
			}
		}
	}

	body.List = append(kept, body.List[i:]...)
	return items, nil
}

// persistentSpecs reports whether a var declaration qualifies as persistent
// state: every spec carries an explicit type, and initializers, when
// present, pair one-to-one with names. Anything else is an ordinary local
// declaration and stops the scan.
func persistentSpecs(gen *ast.GenDecl) ([]*ast.ValueSpec, bool) {
	var specs []*ast.ValueSpec
	for _, s := range gen.Specs {
		spec, ok := s.(*ast.ValueSpec)
		if !ok || spec.Type == nil {
			return nil, false
		}
		if len(spec.Values) != 0 && len(spec.Values) != len(spec.Names) {
			return nil, false
		}
		specs = append(specs, spec)
	}
	return specs, true
}
