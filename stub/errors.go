package stub

import (
	"errors"
	"fmt"
	"go/token"
)

var (
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrUnexpectedArguments  = errors.New("this directive accepts no arguments")
	ErrInvalidExceptionName = errors.New("invalid exception name")
	ErrDisallowedAttribute  = errors.New("disallowed directive")
	ErrDuplicateStaticName  = errors.New("duplicate persistent state name")
)

// Diagnostic is a generation failure pinned to the offending declaration's
// source location. No stub is emitted for a declaration that produced one.
type Diagnostic struct {
	Pos    token.Position
	Err    error
	Detail string
}

func (d *Diagnostic) Error() string {
	if d.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", d.Pos, d.Err, d.Detail)
	}
	return fmt.Sprintf("%s: %s", d.Pos, d.Err)
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

func diag(fset *token.FileSet, pos token.Pos, err error, detail string) *Diagnostic {
	return &Diagnostic{Pos: fset.Position(pos), Err: err, Detail: detail}
}
