package selection

import (
	"fmt"
	"strings"

	"drr/internal/domain"
)

// StaleError lists selected keys that no longer exist in the group list
type StaleError struct {
	Missing []Key
}

func (e *StaleError) Error() string {
	keys := make([]string, len(e.Missing))
	for i, k := range e.Missing {
		keys[i] = k.String()
	}
	return fmt.Sprintf("%d selected channel(s) no longer available: %s", len(e.Missing), strings.Join(keys, ", "))
}

// Resolve rebuilds the submission list from the live group list, so names
// reflect the groups as they are now. It fails with *StaleError when a
// selected channel has disappeared.
func (s Selection) Resolve(groups []domain.Group) ([]domain.ChannelSelection, error) {
	live := make(map[Key]domain.ChannelSelection)
	for _, g := range groups {
		for _, ch := range g.Channels {
			live[KeyOf(g, ch)] = snapshot(g, ch)
		}
	}

	out := make([]domain.ChannelSelection, 0, len(s.order))
	var missing []Key
	for _, k := range s.order {
		rec, ok := live[k]
		if !ok {
			missing = append(missing, k)
			continue
		}
		out = append(out, rec)
	}
	if len(missing) > 0 {
		return nil, &StaleError{Missing: missing}
	}
	return out, nil
}
