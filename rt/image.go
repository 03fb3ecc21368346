package rt

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Boot image layout. The boot ROM loads the image to the bottom of SRAM,
// validates the vendor header, and jumps to the fixed code offset.
const (
	// ImageHeaderOffset..ImageHeaderSize is the vendor (eGON.BT0) header.
	ImageHeaderOffset = 0x00
	ImageHeaderSize   = 0x20

	// ImageMetadataOffset..ImageCodeOffset is overwritten by the boot ROM
	// with boot device information. It must contain no code.
	ImageMetadataOffset = 0x20

	// ImageCodeOffset is where user code begins and where the boot ROM
	// jumps after header validation.
	ImageCodeOffset = 0x30

	// ImageAlignment is the block size the image length is padded to.
	ImageAlignment = 512

	// checksumStamp seeds the header checksum field before summing.
	checksumStamp = 0x5F0A6C39

	magicOffset    = 0x04
	checksumOffset = 0x0C
	lengthOffset   = 0x10
)

var imageMagic = []byte("eGON.BT0")

// branchToCode is the ARM branch instruction at offset 0 jumping to the
// code offset: b . + 0x30, encoded with the usual pc+8 bias.
const branchToCode = 0xEA000000 | (ImageCodeOffset-8)/4

// Image is a vendor-wrapped boot image.
type Image struct {
	data []byte
}

// NewImage wraps code in a boot image: branch word, magic, padded length,
// and checksum in the header; a zeroed metadata range; code at the fixed
// offset.
func NewImage(code []byte) *Image {
	size := uint32(ImageCodeOffset + len(code))
	if rem := size % ImageAlignment; rem != 0 {
		size += ImageAlignment - rem
	}

	data := make([]byte, size)
	binary.LittleEndian.PutUint32(data[ImageHeaderOffset:], branchToCode)
	copy(data[magicOffset:], imageMagic)
	binary.LittleEndian.PutUint32(data[lengthOffset:], size)
	copy(data[ImageCodeOffset:], code)

	binary.LittleEndian.PutUint32(data[checksumOffset:], checksumStamp)
	binary.LittleEndian.PutUint32(data[checksumOffset:], checksum(data))

	return &Image{data: data}
}

// ParseImage wraps raw image bytes, validating the external contract.
func ParseImage(data []byte) (*Image, error) {
	img := &Image{data: data}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

// checksum sums the image as little endian words with the checksum field
// replaced by the stamp value.
func checksum(data []byte) uint32 {
	var sum uint32
	for off := 0; off+4 <= len(data); off += 4 {
		sum += binary.LittleEndian.Uint32(data[off:])
	}
	return sum
}

// Validate checks the fixed byte ranges of the vendor contract: header
// magic, declared length, checksum, and a code-free metadata range.
func (img *Image) Validate() error {
	if len(img.data) < ImageCodeOffset {
		return fmt.Errorf("%w: image is %d bytes", ErrImageTruncated, len(img.data))
	}
	if !bytes.Equal(img.data[magicOffset:magicOffset+len(imageMagic)], imageMagic) {
		return ErrImageBadMagic
	}
	if length := binary.LittleEndian.Uint32(img.data[lengthOffset:]); length != uint32(len(img.data)) {
		return fmt.Errorf("%w: header says %d, image is %d", ErrImageBadLength, length, len(img.data))
	}

	stored := binary.LittleEndian.Uint32(img.data[checksumOffset:])
	scratch := make([]byte, len(img.data))
	copy(scratch, img.data)
	binary.LittleEndian.PutUint32(scratch[checksumOffset:], checksumStamp)
	if got := checksum(scratch); got != stored {
		return fmt.Errorf("%w: stored %#08x, computed %#08x", ErrImageBadChecksum, stored, got)
	}

	for _, b := range img.data[ImageMetadataOffset:ImageCodeOffset] {
		if b != 0 {
			return ErrImageCodeInMetadata
		}
	}
	return nil
}

// Bytes returns the raw image.
func (img *Image) Bytes() []byte {
	return img.data
}

// Code returns the user code portion of the image, padding included.
func (img *Image) Code() []byte {
	return img.data[ImageCodeOffset:]
}

// Load copies the image to the bottom of the machine's RAM, the way the
// boot ROM does, after validating the vendor contract.
func (m *Machine) Load(img *Image) error {
	if err := img.Validate(); err != nil {
		return err
	}
	if len(img.data) > len(m.mem) {
		return fmt.Errorf("%w: image %d bytes, RAM %d", ErrImageTooLarge, len(img.data), len(m.mem))
	}
	copy(m.mem, img.data)
	return nil
}
