package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omibyte.io/arm9rt/arm9"
)

func TestDefaultLayout(t *testing.T) {
	assert := assert.New(t)

	l := Default()
	assert.Equal(uint32(0x00007F00), l.StackTop(arm9.ModeFIQ))
	assert.Equal(uint32(0x00007E00), l.StackTop(arm9.ModeIRQ))
	assert.Equal(uint32(0x00007D80), l.StackTop(arm9.ModeAbort))
	assert.Equal(uint32(0x00007D00), l.StackTop(arm9.ModeUndefined))
	assert.Equal(uint32(0x00007C00), l.StackTop(arm9.ModeSupervisor))
	assert.Equal(uint32(0x00007800), l.StackTop(arm9.ModeSystem))

	// User mode shares the system stack.
	assert.Equal(l.StackTop(arm9.ModeSystem), l.StackTop(arm9.ModeUser))

	assert.Equal(uint32(0x800), l.BSS.Size())
	assert.Equal(uint32(0x2000), l.Data.Load)
	assert.Equal(uint32(0x5800), l.HeapStart())
}

func TestLoadValidates(t *testing.T) {
	table := []struct {
		name string
		doc  string
		err  error
	}{
		{
			"missing stack",
			`
stacks:
  fiq: 0x100
bss: {start: 0, end: 0}
data: {start: 0, end: 0, load: 0}
`,
			ErrMissingStack,
		},
		{
			"unknown stack",
			`
stacks:
  fiq: 0x100
  irq: 0x200
  abort: 0x300
  undefined: 0x400
  supervisor: 0x500
  system: 0x600
  monitor: 0x700
`,
			ErrUnknownStack,
		},
		{
			"misaligned stack",
			`
stacks:
  fiq: 0x101
  irq: 0x200
  abort: 0x300
  undefined: 0x400
  supervisor: 0x500
  system: 0x600
`,
			ErrMisaligned,
		},
		{
			"inverted region",
			`
stacks:
  fiq: 0x100
  irq: 0x200
  abort: 0x300
  undefined: 0x400
  supervisor: 0x500
  system: 0x600
bss: {start: 0x2000, end: 0x1000}
`,
			ErrInvertedRegion,
		},
		{
			"not yaml",
			`{{{`,
			ErrParse,
		},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			_, err := Load([]byte(entry.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, entry.err)
		})
	}
}

func TestLoadRoundTrip(t *testing.T) {
	doc := `
stacks:
  fiq: 0x1F00
  irq: 0x1E00
  abort: 0x1D00
  undefined: 0x1C00
  supervisor: 0x1B00
  system: 0x1A00
bss: {start: 0x1000, end: 0x1400}
data: {start: 0x800, end: 0xC00, load: 0x400}
heap: 0x1400
`
	l, err := Load([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1F00), l.StackTop(arm9.ModeFIQ))
	assert.Equal(t, uint32(0x400), l.Data.Size())
	assert.Equal(t, uint32(0x1400), l.HeapStart())
}
