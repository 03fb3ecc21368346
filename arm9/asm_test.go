package arm9

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShimsLeaveStatusAlone(t *testing.T) {
	before := ReadCPSR()

	Nop()
	Wfi()
	Delay(64)

	assert.Equal(t, before, ReadCPSR())
}
