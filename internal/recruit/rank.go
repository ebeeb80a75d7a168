package recruit

import "sort"

// Ordering is deterministic everywhere: stars descending, then profession,
// then name, so repeated runs over the same snapshot produce byte-identical
// output.

func entityLess(a, b Entity) bool {
	if a.Stars != b.Stars {
		return a.Stars > b.Stars
	}
	if a.Profession != b.Profession {
		return a.Profession < b.Profession
	}
	return a.Name < b.Name
}

func sortEntities(list []Entity) {
	sort.Slice(list, func(i, j int) bool { return entityLess(list[i], list[j]) })
}

func sortMatches(list []Match) {
	sort.Slice(list, func(i, j int) bool { return entityLess(list[i].Entity, list[j].Entity) })
}

func sortGroups(groups []Group) {
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.AvgStars != b.AvgStars {
			return a.AvgStars > b.AvgStars
		}
		if len(a.Members) != len(b.Members) {
			return len(a.Members) > len(b.Members)
		}
		return a.Key < b.Key
	})
}
