package server

import (
	"sync"

	"github.com/matzehuels/planforge/pkg/generate"
)

const defaultMaxSessions = 1024

// sessions maps session IDs to generation coordinators. The table never
// holds more than max entries.
type sessions struct {
	src generate.Source
	max int

	mu    sync.Mutex
	seq   uint64
	coord map[string]*session
}

type session struct {
	c    *generate.Coordinator
	used uint64
}

func newSessions(src generate.Source, max int) *sessions {
	return &sessions{src: src, max: max, coord: make(map[string]*session)}
}

// get returns the coordinator of id, creating it if needed. When the table
// is full, idle coordinators are dropped first. If every coordinator is
// still pending, the least recently used one is canceled and dropped.
func (s *sessions) get(id string) *generate.Coordinator {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if e, ok := s.coord[id]; ok {
		e.used = s.seq
		return e.c
	}
	if s.max > 0 && len(s.coord) >= s.max {
		s.evict()
	}
	c := generate.NewCoordinator(s.src)
	s.coord[id] = &session{c: c, used: s.seq}
	return c
}

func (s *sessions) evict() {
	for k, e := range s.coord {
		if !e.c.Pending() {
			delete(s.coord, k)
		}
	}
	for len(s.coord) >= s.max {
		var (
			oldest string
			used   uint64
			found  bool
		)
		for k, e := range s.coord {
			if !found || e.used < used {
				oldest, used, found = k, e.used, true
			}
		}
		s.coord[oldest].c.Cancel()
		delete(s.coord, oldest)
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.coord)
}
