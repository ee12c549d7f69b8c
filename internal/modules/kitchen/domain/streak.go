package domain

type Streak struct {
	Current    int
	Best       int
	LastActive Date
}

// UpdateStreak records a focus completion on today. Repeats on the same day
// leave the streak alone.
func UpdateStreak(s Streak, today Date) Streak {
	switch {
	case s.LastActive == today:
	case !s.LastActive.IsZero() && s.LastActive.AddDays(1) == today:
		s.Current++
	default:
		s.Current = 1
	}
	if s.Current > s.Best {
		s.Best = s.Current
	}
	s.LastActive = today
	return s
}

func (s State) streak() Streak {
	return Streak{Current: s.Streak, Best: s.BestStreak, LastActive: s.LastActiveDate}
}

func (s *State) applyStreak(st Streak) {
	s.Streak = st.Current
	s.BestStreak = st.Best
	s.LastActiveDate = st.LastActive
}

// RollOver marks the app as opened on today. It never touches the streak
// fields; only focus completions do. Reports whether the day changed.
func (s *State) RollOver(today Date) bool {
	if s.LastOpenDate == today {
		return false
	}
	s.LastOpenDate = today
	return true
}
