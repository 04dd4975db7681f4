package engine

// dropIntervals is the automatic drop interval in seconds, indexed by
// level-1. Levels past the end use the last entry.
var dropIntervals = [...]float64{
	1.000, // 1
	0.900, // 2
	0.800, // 3
	0.700, // 4
	0.600, // 5
	0.500, // 6
	0.400, // 7
	0.350, // 8
	0.300, // 9
	0.250, // 10
	0.200, // 11
	0.160, // 12
	0.130, // 13
	0.100, // 14
	0.080, // 15+
}

// MinDropInterval is the fastest automatic drop interval.
const MinDropInterval = 0.080

// DropInterval returns the seconds between automatic one-row drops at the
// given level. Levels below 1 are treated as 1.
func DropInterval(level int) float64 {
	if level < 1 {
		level = 1
	}
	if level > len(dropIntervals) {
		return MinDropInterval
	}
	return dropIntervals[level-1]
}
