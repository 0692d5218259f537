package tui

import (
	"fmt"

	"isoplan/internal/arrange"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func fmtUV(p arrange.UV) string {
	return fmt.Sprintf("u=%.2f v=%.2f", p.U, p.V)
}

// shortID trims region IDs for narrow columns.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
