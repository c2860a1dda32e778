package catterm

import "golang.org/x/sys/unix"

// pollSet is the interest set for one poll(2) call. Interests on the same
// descriptor share one entry, so a console whose input and output are the
// same tty is polled once.
type pollSet struct {
	fds []unix.PollFd
}

func (s *pollSet) reset() {
	s.fds = s.fds[:0]
}

func (s *pollSet) want(fd int, events int16) {
	for i := range s.fds {
		if s.fds[i].Fd == int32(fd) {
			s.fds[i].Events |= events
			return
		}
	}
	s.fds = append(s.fds, unix.PollFd{Fd: int32(fd), Events: events})
}

// wait blocks until at least one interest is ready.
func (s *pollSet) wait() (int, error) {
	return unix.Poll(s.fds, -1)
}

// ready reports whether fd was polled for events and came back ready for
// them. Hangups and errors count as ready so the following read or write
// reports them.
func (s *pollSet) ready(fd int, events int16) bool {
	for _, p := range s.fds {
		if p.Fd != int32(fd) {
			continue
		}
		if p.Events&events == 0 {
			return false
		}
		return p.Revents&(events|unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0
	}
	return false
}
