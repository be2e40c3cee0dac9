package medusa

import "strconv"

// rozmiarówka garniturów: regular 36R–54R, long 38L–54L (co 2)
var (
	RegularSizes = sizeRange(36, 54, "R")
	LongSizes    = sizeRange(38, 54, "L")
)

// SuitSizes – 19 rozmiarów (10 regular + 9 long).
func SuitSizes() []string {
	out := make([]string, 0, len(RegularSizes)+len(LongSizes))
	out = append(out, RegularSizes...)
	return append(out, LongSizes...)
}

func sizeRange(from, to int, suffix string) []string {
	var out []string
	for n := from; n <= to; n += 2 {
		out = append(out, strconv.Itoa(n)+suffix)
	}
	return out
}

// SizeRun – grupa rozmiarów jednego typu (Regular, Short, Long).
type SizeRun struct {
	Type  string
	Sizes []string
}

// MigrationSizeRuns – pełna rozmiarówka dla migrowanych garniturów:
// regular 34R–56R, short 34S–46S, long 38L–56L (29 rozmiarów).
func MigrationSizeRuns() []SizeRun {
	return []SizeRun{
		{Type: "Regular", Sizes: sizeRange(34, 56, "R")},
		{Type: "Short", Sizes: sizeRange(34, 46, "S")},
		{Type: "Long", Sizes: sizeRange(38, 56, "L")},
	}
}
