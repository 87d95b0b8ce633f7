package buffer

// Buffer accumulates bytes up to a hard limit. Writes that would cross the limit are
// cut at it, and the caller is told so, leaving no way to overflow silently.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(initialSize, maxSize int) *Buffer {
	if initialSize > maxSize {
		initialSize = maxSize
	}

	return &Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes as much of data as fits. It returns false if anything had to be
// discarded.
func (b *Buffer) Append(data []byte) (ok bool) {
	if free := b.Free(); len(data) > free {
		b.memory = append(b.memory, data[:free]...)
		return false
	}

	b.memory = append(b.memory, data...)
	return true
}

// Free returns how many bytes can still be written.
func (b *Buffer) Free() int {
	return b.maxSize - len(b.memory)
}

func (b *Buffer) Len() int {
	return len(b.memory)
}

// Bytes returns the written data. The slice is valid until the next Clear.
func (b *Buffer) Bytes() []byte {
	return b.memory
}

// Clear just resets the pointer, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
