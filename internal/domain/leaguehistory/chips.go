package leaguehistory

// ChipPeriods lists the period of every chip in upstream order.
func ChipPeriods(chips []ChipUsage) []int {
	out := make([]int, 0, len(chips))
	for _, chip := range chips {
		out = append(out, chip.Period)
	}
	return out
}

// ChipMeta groups chip names by the period they were played in.
func ChipMeta(chips []ChipUsage) map[int][]string {
	out := make(map[int][]string)
	for _, chip := range chips {
		out[chip.Period] = append(out[chip.Period], chip.Name)
	}
	return out
}
