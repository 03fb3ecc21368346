package builder

import "errors"

var (
	ErrParserError          = errors.New("parser error occurred")
	ErrMultiplePackages     = errors.New("directory contained multiple packages")
	ErrUnexpectedOutputPath = errors.New("unexpected output path provided")
	ErrNoEntryPoint         = errors.New("no entry point declared")
	ErrMultipleEntryPoints  = errors.New("multiple entry points declared")
	ErrDuplicateHandler     = errors.New("exception kind handled more than once")
	ErrNoModule             = errors.New("package is not inside a module")
)
