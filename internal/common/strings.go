package common

import "strconv"

// NameSet hands out names that are unique within the set.
type NameSet map[string]struct{}

// Claim returns name, or name-2, name-3, ... for repeats, and records it.
func (s NameSet) Claim(name string) string {
	got := name
	for i := 2; ; i++ {
		if _, dup := s[got]; !dup {
			break
		}
		got = name + "-" + strconv.Itoa(i)
	}
	s[got] = struct{}{}
	return got
}
