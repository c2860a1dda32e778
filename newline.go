package catterm

import "bytes"

// newlineTranslator rewrites line-feeds on their way to the device.
// The buffer always keeps raw bytes; translation happens when the next
// chunk to write is picked, so a replacement interrupted by a short
// write resumes where it stopped instead of starting over.
type newlineTranslator struct {
	seq []byte

	// emitting is true while seq[pos:] is still owed to the device in
	// place of the line-feed at the buffer's cursor.
	emitting bool
	pos      int
}

func newNewlineTranslator(seq []byte) *newlineTranslator {
	return &newlineTranslator{seq: seq}
}

// chunk returns the next bytes to write for buf.
func (t *newlineTranslator) chunk(buf *streamBuffer) []byte {
	out := buf.pending()
	if len(t.seq) == 0 {
		return out
	}
	if t.emitting {
		return t.seq[t.pos:]
	}
	if len(out) > 0 && out[0] == '\n' {
		t.emitting, t.pos = true, 0
		return t.seq
	}
	if i := bytes.IndexByte(out, '\n'); i >= 0 {
		return out[:i]
	}
	return out
}

// consume accounts for n bytes of the last chunk having been written.
func (t *newlineTranslator) consume(buf *streamBuffer, n int) {
	if !t.emitting {
		buf.advance(n)
		return
	}
	t.pos += n
	if t.pos == len(t.seq) {
		t.emitting, t.pos = false, 0
		buf.advance(1)
	}
}
