package util

import "fmt"

const (
	kb = int64(1024)
	mb = kb * 1024
	gb = mb * 1024
	tb = gb * 1024
)

// BytesToSize renders a byte count with a human-scaled unit suffix.
func BytesToSize(sz int64) string {
	if sz >= tb {
		return fmt.Sprintf("%.2f TB", float64(sz)/float64(tb))
	}
	if sz >= gb {
		return fmt.Sprintf("%.2f GB", float64(sz)/float64(gb))
	}
	if sz >= mb {
		return fmt.Sprintf("%.2f MB", float64(sz)/float64(mb))
	}
	if sz >= kb {
		return fmt.Sprintf("%.2f kB", float64(sz)/float64(kb))
	}
	return fmt.Sprintf("%d bytes", sz)
}
