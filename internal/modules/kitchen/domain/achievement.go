package domain

// Evaluate folds the catalog predicates over s. Flags already earned in s stay
// true whatever the predicates say now.
func Evaluate(s State, catalog []Achievement) map[string]bool {
	out := make(map[string]bool, len(s.Achievements)+len(catalog))
	for id, earned := range s.Achievements {
		out[id] = earned
	}
	for _, a := range catalog {
		if out[a.ID] {
			continue
		}
		out[a.ID] = a.Predicate(s)
	}
	return out
}

// RecordAchievements evaluates the catalog and writes earned flags back.
// It returns the ids earned by this call, in catalog order.
func (s *State) RecordAchievements(catalog []Achievement) []string {
	result := Evaluate(*s, catalog)
	if s.Achievements == nil {
		s.Achievements = map[string]bool{}
	}
	var earned []string
	for _, a := range catalog {
		if result[a.ID] && !s.Achievements[a.ID] {
			s.Achievements[a.ID] = true
			earned = append(earned, a.ID)
		}
	}
	return earned
}
