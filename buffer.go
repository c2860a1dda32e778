package catterm

// BufferSize is the capacity of each direction's buffer and the largest
// single read or write the relay issues.
const BufferSize = 1024

// streamBuffer holds one batch in flight for one direction.
// 0 <= next <= count <= BufferSize always holds.
type streamBuffer struct {
	data  [BufferSize]byte
	count int
	next  int
}

// empty reports whether every byte read so far has been written out.
// Only an empty buffer may be refilled.
func (b *streamBuffer) empty() bool {
	return b.next == b.count
}

// space resets the buffer and returns the full backing array for the next read.
func (b *streamBuffer) space() []byte {
	b.count, b.next = 0, 0
	return b.data[:]
}

// fill records that n bytes were read into the buffer.
func (b *streamBuffer) fill(n int) {
	b.count, b.next = n, 0
}

// pending returns the bytes not yet written out.
func (b *streamBuffer) pending() []byte {
	return b.data[b.next:b.count]
}

// advance consumes n written bytes.
func (b *streamBuffer) advance(n int) {
	b.next += n
}
