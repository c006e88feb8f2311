package edit

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a diagram-safe identifier starting with prefix that is not
// in taken.
func NewID(prefix string, taken []string) string {
	used := make(map[string]bool, len(taken))
	for _, id := range taken {
		used[id] = true
	}
	for {
		raw := strings.ReplaceAll(uuid.NewString(), "-", "")
		id := prefix + raw[:10]
		if !used[id] {
			return id
		}
	}
}
