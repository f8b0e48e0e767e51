package timeline

// ScrollSync keeps the ticket list and the timeline scrolled together. A
// scroll applied to one pane because the other moved must not bounce back,
// so while a programmatic update is in flight further sync requests are
// dropped until the next frame.
type ScrollSync struct {
	syncing bool
}

// Propagate runs apply unless a sync is already in flight. It reports
// whether apply ran.
func (s *ScrollSync) Propagate(apply func()) bool {
	if s.syncing {
		return false
	}
	s.syncing = true
	apply()
	return true
}

// Syncing reports whether a programmatic scroll is in flight.
func (s *ScrollSync) Syncing() bool { return s.syncing }

// EndFrame clears the in-flight flag. Call it once the frame that applied
// the scroll has been drawn.
func (s *ScrollSync) EndFrame() { s.syncing = false }
