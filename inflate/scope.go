package inflate

// scope is a stack of name bindings. Frames are searched innermost first and
// never merged.
type scope[T any] struct {
	frames []map[string]T
}

func (s *scope[T]) push(frame map[string]T) {
	s.frames = append(s.frames, frame)
}

// pop removes the innermost frame. Popping an empty stack is a caller bug.
func (s *scope[T]) pop() {
	if len(s.frames) == 0 {
		panic("inflate: pop of empty scope stack")
	}

	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *scope[T]) find(name string) (T, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}

	var zero T

	return zero, false
}

func (s *scope[T]) len() int { return len(s.frames) }

// truncate pops frames until at most n remain.
func (s *scope[T]) truncate(n int) {
	for len(s.frames) > n {
		s.pop()
	}
}
