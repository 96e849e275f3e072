package clock

import "fmt"

// FormatTime renders seconds as zero-padded MM:SS.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
