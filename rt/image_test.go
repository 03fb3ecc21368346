package rt

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omibyte.io/arm9rt/layout"
)

func TestNewImageLayout(t *testing.T) {
	assert := assert.New(t)

	code := []byte{0x01, 0x02, 0x03, 0x04}
	img := NewImage(code)
	data := img.Bytes()

	require.NoError(t, img.Validate())
	assert.Equal(0, len(data)%ImageAlignment)

	// Branch word at 0, magic at 4, padded length at 0x10.
	assert.Equal(uint32(branchToCode), binary.LittleEndian.Uint32(data))
	assert.Equal([]byte("eGON.BT0"), data[magicOffset:magicOffset+8])
	assert.Equal(uint32(len(data)), binary.LittleEndian.Uint32(data[lengthOffset:]))

	// Metadata range is zeroed; code sits at the fixed offset.
	for _, b := range data[ImageMetadataOffset:ImageCodeOffset] {
		assert.Zero(b)
	}
	assert.Equal(code, data[ImageCodeOffset:ImageCodeOffset+4])
	assert.Equal(code, img.Code()[:4])
}

func TestImageValidateRejects(t *testing.T) {
	table := []struct {
		name   string
		mangle func(data []byte)
		err    error
	}{
		{"bad magic", func(d []byte) { d[magicOffset] = 'X' }, ErrImageBadMagic},
		{"bad length", func(d []byte) { binary.LittleEndian.PutUint32(d[lengthOffset:], 0x1000) }, ErrImageBadLength},
		{"bad checksum", func(d []byte) { d[ImageCodeOffset+1] ^= 0xFF }, ErrImageBadChecksum},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			img := NewImage([]byte{0xAA})
			entry.mangle(img.Bytes())
			assert.ErrorIs(t, img.Validate(), entry.err)
		})
	}

	t.Run("truncated", func(t *testing.T) {
		_, err := ParseImage(make([]byte, 8))
		assert.ErrorIs(t, err, ErrImageTruncated)
	})

	t.Run("code in metadata range", func(t *testing.T) {
		img := NewImage(nil)
		data := img.Bytes()
		data[ImageMetadataOffset+2] = 0xEA
		// Fix the checksum back up so only the metadata check can fire.
		binary.LittleEndian.PutUint32(data[checksumOffset:], checksumStamp)
		binary.LittleEndian.PutUint32(data[checksumOffset:], checksum(data))
		assert.ErrorIs(t, img.Validate(), ErrImageCodeInMetadata)
	})
}

func TestParseImageRoundTrip(t *testing.T) {
	img := NewImage([]byte{1, 2, 3})
	parsed, err := ParseImage(img.Bytes())
	require.NoError(t, err)
	assert.Equal(t, img.Bytes(), parsed.Bytes())
}

func TestMachineLoadImage(t *testing.T) {
	assert := assert.New(t)
	m := newTestMachine(t)

	img := NewImage([]byte{0xDE, 0xC0, 0x17, 0xE1})
	require.NoError(t, m.Load(img))
	assert.Equal(img.Bytes()[:64], m.ReadBytes(0, 64))

	small := NewMachine(layout.Default(), 16)
	assert.ErrorIs(small.Load(img), ErrImageTooLarge)

	bad := NewImage(nil)
	bad.Bytes()[magicOffset] = '?'
	assert.ErrorIs(m.Load(bad), ErrImageBadMagic)
}

func TestExceptionFrameString(t *testing.T) {
	f := ExceptionFrame{R0: 1, PC: 0x30, CPSR: 0xD3}
	s := f.String()
	assert.Contains(t, s, "r0: 0x00000001")
	assert.Contains(t, s, "pc: 0x00000030")
	assert.Contains(t, s, "cpsr: 0x000000d3")
}

func TestHeapStart(t *testing.T) {
	m := newTestMachine(t)
	assert.Equal(t, layout.Default().HeapStart(), m.HeapStart())
}
