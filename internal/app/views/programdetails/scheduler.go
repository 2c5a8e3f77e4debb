package programdetails

// scheduler defers callbacks to the next tick. Callbacks queued while a tick runs wait for
// the following one.
type scheduler struct {
	queue []func()
}

func (s *scheduler) later(fn func()) {
	s.queue = append(s.queue, fn)
}

func (s *scheduler) pending() int {
	return len(s.queue)
}

func (s *scheduler) tick() int {
	batch := s.queue
	s.queue = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
