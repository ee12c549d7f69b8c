package out_test

import (
	"fmt"
	"sync"
)

type seqID struct {
	mu sync.Mutex
	n  int
}

func (s *seqID) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("evt-%03d", s.n)
}
