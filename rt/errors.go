package rt

import "errors"

// Image validation errors. The runtime primitives themselves have no error
// channel; only the build-side image helpers report failures.
var (
	ErrImageTruncated      = errors.New("boot image is shorter than the code offset")
	ErrImageBadMagic       = errors.New("boot image header magic mismatch")
	ErrImageBadLength      = errors.New("boot image header length mismatch")
	ErrImageBadChecksum    = errors.New("boot image header checksum mismatch")
	ErrImageCodeInMetadata = errors.New("boot image metadata range must contain no code")
	ErrImageTooLarge       = errors.New("boot image does not fit in RAM")
)
