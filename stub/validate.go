package stub

import (
	"go/ast"
	"go/token"

	"omibyte.io/arm9rt/rt"
)

// validate checks the structural constraints of an annotated declaration.
//
// Both roles require a plain package-scope function: no receiver, no
// parameters, no type parameters, no results. The entry point must
// additionally be divergent; an exception handler may either diverge or
// fall off the end normally.
func validate(fset *token.FileSet, decl *ast.FuncDecl, role Role) error {
	ok := decl.Recv == nil &&
		decl.Type.TypeParams == nil &&
		(decl.Type.Params == nil || len(decl.Type.Params.List) == 0) &&
		(decl.Type.Results == nil || len(decl.Type.Results.List) == 0) &&
		decl.Body != nil

	switch role {
	case RoleEntry:
		if !ok || !diverges(decl.Body) {
			return diag(fset, decl.Pos(), ErrInvalidSignature,
				"entry point must be func "+decl.Name.Name+"() with a body that never returns")
		}
	case RoleException:
		if !ok {
			return diag(fset, decl.Pos(), ErrInvalidSignature,
				"exception handler must be func "+decl.Name.Name+"() with no parameters or results")
		}
		if _, known := rt.ExceptionByName(decl.Name.Name); !known {
			return diag(fset, decl.Name.Pos(), ErrInvalidExceptionName,
				"valid: Undefined, SWI, PrefetchAbort, DataAbort, IRQ, FIQ")
		}
	}
	return nil
}

// diverges reports whether the body can never return to its caller: it
// contains no return statement and its final statement is terminating.
func diverges(body *ast.BlockStmt) bool {
	returns := false
	ast.Inspect(body, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.FuncLit:
			return false // a literal's returns are its own
		case *ast.ReturnStmt:
			returns = true
		}
		return !returns
	})
	if returns {
		return false
	}
	return terminating(body)
}

// terminating is the subset of the language's terminating statements the
// validator recognizes: panic calls, bare for loops, empty selects, and
// blocks or if/else chains ending in one of those.
func terminating(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		if len(s.List) == 0 {
			return false
		}
		return terminating(s.List[len(s.List)-1])
	case *ast.LabeledStmt:
		return terminating(s.Stmt)
	case *ast.ExprStmt:
		call, ok := s.X.(*ast.CallExpr)
		if !ok {
			return false
		}
		ident, ok := call.Fun.(*ast.Ident)
		return ok && ident.Name == "panic"
	case *ast.ForStmt:
		return s.Cond == nil && !breaksOut(s.Body)
	case *ast.SelectStmt:
		return len(s.Body.List) == 0
	case *ast.IfStmt:
		return s.Else != nil && terminating(s.Body) && terminating(s.Else)
	}
	return false
}

// breaksOut reports whether a loop body contains a break bound to the loop
// itself. Breaks inside nested loops, switches, and selects bind to those
// statements and are ignored.
func breaksOut(body *ast.BlockStmt) bool {
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.BranchStmt:
			if s.Tok == token.BREAK {
				found = true
			}
		case *ast.ForStmt, *ast.RangeStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt, *ast.FuncLit:
			return false
		}
		return !found
	})
	return found
}
