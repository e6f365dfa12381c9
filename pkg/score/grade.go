package score

// gradeLadder maps score floors to letter grades, highest first.
var gradeLadder = []struct {
	floor int
	grade string
}{
	{97, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{63, "D"},
	{60, "D-"},
}

// GradeFor maps a total score onto the letter ladder. Anything below 60 is
// an F.
func GradeFor(total int) string {
	for _, step := range gradeLadder {
		if total >= step.floor {
			return step.grade
		}
	}
	return "F"
}
