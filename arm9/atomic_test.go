package arm9

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadStore(t *testing.T) {
	assert := assert.New(t)

	var v8 uint8
	var v16 uint16
	var v32 uint32

	Store(&v8, 0xAB)
	Store(&v16, 0xABCD)
	Store(&v32, 0xDEADBEEF)

	assert.Equal(uint8(0xAB), Load(&v8))
	assert.Equal(uint16(0xABCD), Load(&v16))
	assert.Equal(uint32(0xDEADBEEF), Load(&v32))
}

func TestExchange(t *testing.T) {
	assert := assert.New(t)

	v := uint32(1)
	old := Exchange(&v, 2)
	assert.Equal(uint32(1), old)
	assert.Equal(uint32(2), v)
}

func TestCompareExchangeSuccess(t *testing.T) {
	assert := assert.New(t)

	v := uint16(10)
	expected := uint16(10)
	ok := CompareExchange(&v, &expected, 20)
	assert.True(ok)
	assert.Equal(uint16(20), v)
	assert.Equal(uint16(10), expected)
}

func TestCompareExchangeFailureWritesBackCurrent(t *testing.T) {
	assert := assert.New(t)

	// On failure the expected location must hold exactly the pre-call
	// current value, whatever it held before.
	table := []struct {
		current  uint8
		expected uint8
	}{
		{5, 0},
		{5, 6},
		{0xFF, 0x00},
	}

	for _, entry := range table {
		v := entry.current
		expected := entry.expected
		ok := CompareExchange(&v, &expected, 99)
		assert.False(ok)
		assert.Equal(entry.current, v, "value must be unchanged")
		assert.Equal(entry.current, expected, "expected must hold the current value")
	}
}

func TestFetchOpsReturnPreviousValue(t *testing.T) {
	assert := assert.New(t)

	v := uint32(0b1100)
	assert.Equal(uint32(0b1100), FetchAdd(&v, 1))
	assert.Equal(uint32(0b1101), FetchSub(&v, 1))
	assert.Equal(uint32(0b1100), FetchOr(&v, 0b0011))
	assert.Equal(uint32(0b1111), FetchAnd(&v, 0b1010))
	assert.Equal(uint32(0b1010), FetchXor(&v, 0b0110))
	assert.Equal(uint32(0b1100), FetchNand(&v, 0b1000))
	assert.Equal(^uint32(0b1000), v)
}

func TestFetchAddWraparound(t *testing.T) {
	assert := assert.New(t)

	v8 := uint8(0xFF)
	assert.Equal(uint8(0xFF), FetchAdd(&v8, 2))
	assert.Equal(uint8(0x01), v8)

	v16 := uint16(0xFFFF)
	assert.Equal(uint16(0xFFFF), FetchAdd(&v16, 1))
	assert.Equal(uint16(0x0000), v16)

	v32 := uint32(0xFFFFFFFF)
	assert.Equal(uint32(0xFFFFFFFF), FetchAdd(&v32, 3))
	assert.Equal(uint32(0x00000002), v32)
}

func TestFetchSubWraparound(t *testing.T) {
	assert := assert.New(t)

	v8 := uint8(0)
	assert.Equal(uint8(0), FetchSub(&v8, 1))
	assert.Equal(uint8(0xFF), v8)

	v16 := uint16(1)
	assert.Equal(uint16(1), FetchSub(&v16, 3))
	assert.Equal(uint16(0xFFFE), v16)
}

func TestFetchNandWidth(t *testing.T) {
	// Nand must complement within the operand width only.
	v := uint8(0xF0)
	old := FetchNand(&v, 0xFF)
	assert.Equal(t, uint8(0xF0), old)
	assert.Equal(t, uint8(0x0F), v)
}

func TestAtomicsPreserveMaskState(t *testing.T) {
	assert := assert.New(t)
	defer Restore(MaskBits)

	for _, initial := range []IntState{0, MaskBits} {
		Restore(initial)
		v := uint32(0)
		Store(&v, 1)
		FetchAdd(&v, 1)
		expected := uint32(2)
		CompareExchange(&v, &expected, 3)
		Synchronize()
		assert.Equal(initial, IntState(ReadCPSR())&MaskBits, "initial %#x", initial)
	}
}

func TestCell(t *testing.T) {
	assert := assert.New(t)

	c := NewCell[uint16](100)
	assert.Equal(uint16(100), c.Load())

	c.Store(200)
	assert.Equal(uint16(200), c.Exchange(300))
	assert.Equal(uint16(300), c.FetchAdd(1))

	expected := uint16(301)
	assert.True(c.CompareExchange(&expected, 5))
	assert.Equal(uint16(5), c.Load())

	expected = 99
	assert.False(c.CompareExchange(&expected, 6))
	assert.Equal(uint16(5), expected)

	var zero Cell[uint8]
	assert.Equal(uint8(0), zero.FetchOr(0x80))
	assert.Equal(uint8(0x80), zero.Load())
}
