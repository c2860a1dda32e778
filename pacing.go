package catterm

import "time"

// pacer throttles device writes to one byte per delay.
type pacer struct {
	delay time.Duration
	sleep func(time.Duration)
}

func newPacer(delay time.Duration) *pacer {
	return &pacer{delay: delay, sleep: time.Sleep}
}

func (p *pacer) active() bool {
	return p.delay > 0
}

// limit caps a device write to a single byte while pacing.
func (p *pacer) limit(out []byte) []byte {
	if p.active() && len(out) > 1 {
		return out[:1]
	}
	return out
}

// pause blocks after a device write. Nothing else in the relay runs
// meanwhile, the console direction included.
func (p *pacer) pause() {
	if p.active() {
		p.sleep(p.delay)
	}
}
