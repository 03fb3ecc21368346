// Package layout carries the integrator supplied memory description: the
// per-mode stack tops, the zero-fill and initialized-data regions, and the
// heap start marker. The description is a small YAML document; a default for
// the Allwinner F1C100S boot SRAM is embedded.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/arm9rt/arm9"
)

//go:embed f1c100s.yaml
var rawDefault []byte

var defaultLayout Layout

// stackModes are the six modes that receive a private stack at reset. User
// mode shares the System stack and has no entry of its own.
var stackModes = []string{"fiq", "irq", "abort", "undefined", "supervisor", "system"}

// Region is a half-open address range.
type Region struct {
	Start uint32 `yaml:"start"`
	End   uint32 `yaml:"end"`
}

// Size returns the region length in bytes.
func (r Region) Size() uint32 {
	return r.End - r.Start
}

// DataRegion is the initialized-data region: its runtime range plus the
// address its initial contents are loaded from in the boot image.
type DataRegion struct {
	Region `yaml:",inline"`
	Load   uint32 `yaml:"load"`
}

// Layout is the parsed memory description.
type Layout struct {
	Stacks map[string]uint32 `yaml:"stacks"`
	BSS    Region            `yaml:"bss"`
	Data   DataRegion        `yaml:"data"`
	Heap   uint32            `yaml:"heap"`
}

// Default returns the embedded F1C100S layout.
func Default() Layout {
	return defaultLayout
}

// Load parses and validates a layout document.
func Load(b []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(b, &l); err != nil {
		return Layout{}, errors.Join(ErrParse, err)
	}
	if err := l.validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// LoadFile reads and parses the layout document at path.
func LoadFile(path string) (Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, err
	}
	return Load(b)
}

func (l Layout) validate() error {
	for name := range l.Stacks {
		if !slices.Contains(stackModes, name) {
			return fmt.Errorf("%w: %q", ErrUnknownStack, name)
		}
	}
	for _, name := range stackModes {
		top, ok := l.Stacks[name]
		if !ok || top == 0 {
			return fmt.Errorf("%w: %s", ErrMissingStack, name)
		}
		if top%4 != 0 {
			return fmt.Errorf("%w: %s stack top %#08x", ErrMisaligned, name, top)
		}
	}
	for _, region := range []struct {
		name string
		r    Region
	}{
		{"bss", l.BSS},
		{"data", l.Data.Region},
	} {
		if region.r.End < region.r.Start {
			return fmt.Errorf("%w: %s %#08x..%#08x", ErrInvertedRegion, region.name, region.r.Start, region.r.End)
		}
		if region.r.Start%4 != 0 || region.r.End%4 != 0 {
			return fmt.Errorf("%w: %s region", ErrMisaligned, region.name)
		}
	}
	if l.Data.Load%4 != 0 {
		return fmt.Errorf("%w: data load address %#08x", ErrMisaligned, l.Data.Load)
	}
	return nil
}

// StackTop returns the top-of-stack address for a processor mode. User mode
// shares the System stack.
func (l Layout) StackTop(m arm9.Mode) uint32 {
	switch m {
	case arm9.ModeFIQ:
		return l.Stacks["fiq"]
	case arm9.ModeIRQ:
		return l.Stacks["irq"]
	case arm9.ModeAbort:
		return l.Stacks["abort"]
	case arm9.ModeUndefined:
		return l.Stacks["undefined"]
	case arm9.ModeSupervisor:
		return l.Stacks["supervisor"]
	case arm9.ModeUser, arm9.ModeSystem:
		return l.Stacks["system"]
	}
	return 0
}

// HeapStart returns the heap start marker.
func (l Layout) HeapStart() uint32 {
	return l.Heap
}

func init() {
	l, err := Load(rawDefault)
	if err != nil {
		panic(err)
	}
	defaultLayout = l
}
