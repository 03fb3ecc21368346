package arm9

// The operand widths the atomic emulation supports: 1, 2, and 4 bytes.
// Arithmetic on these types wraps at the operand width, which is exactly
// the semantics the fetch operations need.
type value interface {
	~uint8 | ~uint16 | ~uint32
}

// The emulated atomics mirror the __atomic_* compiler builtins: every
// operation enters a critical section, performs a plain read/modify/write,
// and leaves. Atomicity holds only with respect to other code that also
// masks interrupts for conflicting accesses; nothing protects against
// another core.

// Load atomically reads *ptr.
func Load[T value](ptr *T) T {
	return Free(func() T { return *ptr })
}

// Store atomically writes val to *ptr.
func Store[T value](ptr *T, val T) {
	With(func() { *ptr = val })
}

// Exchange writes val to *ptr and returns the previous value.
func Exchange[T value](ptr *T, val T) T {
	return Free(func() T {
		old := *ptr
		*ptr = val
		return old
	})
}

// CompareExchange performs a single compare and swap attempt. If *ptr equals
// *expected it stores desired and reports success; otherwise it writes the
// current value back through expected and reports failure. There is no weak
// variant; the attempt never fails spuriously.
func CompareExchange[T value](ptr, expected *T, desired T) bool {
	return Free(func() bool {
		current := *ptr
		if current == *expected {
			*ptr = desired
			return true
		}
		*expected = current
		return false
	})
}

// FetchAdd adds val to *ptr with wraparound and returns the previous value.
func FetchAdd[T value](ptr *T, val T) T {
	return fetchOp(ptr, func(old T) T { return old + val })
}

// FetchSub subtracts val from *ptr with wraparound and returns the previous
// value.
func FetchSub[T value](ptr *T, val T) T {
	return fetchOp(ptr, func(old T) T { return old - val })
}

// FetchOr ors val into *ptr and returns the previous value.
func FetchOr[T value](ptr *T, val T) T {
	return fetchOp(ptr, func(old T) T { return old | val })
}

// FetchAnd ands val into *ptr and returns the previous value.
func FetchAnd[T value](ptr *T, val T) T {
	return fetchOp(ptr, func(old T) T { return old & val })
}

// FetchXor xors val into *ptr and returns the previous value.
func FetchXor[T value](ptr *T, val T) T {
	return fetchOp(ptr, func(old T) T { return old ^ val })
}

// FetchNand stores ^(*ptr & val) and returns the previous value.
func FetchNand[T value](ptr *T, val T) T {
	return fetchOp(ptr, func(old T) T { return ^(old & val) })
}

func fetchOp[T value](ptr *T, op func(T) T) T {
	return Free(func() T {
		old := *ptr
		*ptr = op(old)
		return old
	})
}

// Synchronize is a full memory barrier. On a single core with in-order
// retirement no instruction is required; the call only orders the emulated
// operations around it.
func Synchronize() {}

// Cell is a value guarded by the atomic emulation. It hides the raw pointer
// from callers; every access goes through the critical section.
type Cell[T value] struct {
	v T
}

// NewCell returns a cell holding val.
func NewCell[T value](val T) *Cell[T] {
	return &Cell[T]{v: val}
}

func (c *Cell[T]) Load() T           { return Load(&c.v) }
func (c *Cell[T]) Store(val T)       { Store(&c.v, val) }
func (c *Cell[T]) Exchange(val T) T  { return Exchange(&c.v, val) }
func (c *Cell[T]) FetchAdd(val T) T  { return FetchAdd(&c.v, val) }
func (c *Cell[T]) FetchSub(val T) T  { return FetchSub(&c.v, val) }
func (c *Cell[T]) FetchOr(val T) T   { return FetchOr(&c.v, val) }
func (c *Cell[T]) FetchAnd(val T) T  { return FetchAnd(&c.v, val) }
func (c *Cell[T]) FetchXor(val T) T  { return FetchXor(&c.v, val) }
func (c *Cell[T]) FetchNand(val T) T { return FetchNand(&c.v, val) }

// CompareExchange attempts to replace the cell's value. See the package
// level CompareExchange for the failure contract.
func (c *Cell[T]) CompareExchange(expected *T, desired T) bool {
	return CompareExchange(&c.v, expected, desired)
}
