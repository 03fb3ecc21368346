package layout

import "errors"

var (
	ErrParse          = errors.New("failed to parse memory layout")
	ErrMissingStack   = errors.New("memory layout is missing a stack region")
	ErrUnknownStack   = errors.New("memory layout names an unknown stack")
	ErrMisaligned     = errors.New("memory layout address is not word aligned")
	ErrInvertedRegion = errors.New("memory layout region ends before it starts")
)
