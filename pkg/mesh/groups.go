package mesh

// UnusedGroups returns, in ascending order, the indices of groups in which
// no vertex has a positive weight. Memberships that reference groups out of
// range are ignored.
func UnusedGroups(src Source) []int {
	n := src.GroupCount()
	if n == 0 {
		return nil
	}
	used := make([]bool, n)
	for v := range src.Vertices() {
		for _, m := range v.Groups {
			if m.Group >= 0 && m.Group < n && m.Weight > 0 {
				used[m.Group] = true
			}
		}
	}
	var unused []int
	for i, ok := range used {
		if !ok {
			unused = append(unused, i)
		}
	}
	return unused
}
