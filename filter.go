package catterm

import "bytes"

// SuppressControls replaces every byte below 0x20 other than '\n', '\r'
// and '\b' with '?'. The batch is modified in place.
func SuppressControls(p []byte) {
	for i, c := range p {
		if c >= 0x20 {
			continue
		}
		switch c {
		case '\n', '\r', '\b':
		default:
			p[i] = '?'
		}
	}
}

// containsEscape reports whether the escape byte appears anywhere in batch.
func containsEscape(batch []byte, esc byte) bool {
	return bytes.IndexByte(batch, esc) >= 0
}
