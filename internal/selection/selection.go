// Package selection tracks which channels, across a tree of groups, are
// checked in a channel picker.
//
// A Selection is an immutable value. Every mutating operation returns a new
// Selection and leaves the receiver untouched, so a view keyed on the value
// re-renders whenever it changes. Records are snapshots of the group and
// channel names at the time they were selected; callers clear the selection
// whenever the backing group list is reloaded.
package selection

import "drr/internal/domain"

// Key identifies a channel within its group
type Key struct {
	GroupID   string
	ChannelID string
}

// String renders the key as "group:channel"
func (k Key) String() string {
	return k.GroupID + ":" + k.ChannelID
}

// KeyOf returns the key for a channel of a group
func KeyOf(group domain.Group, channel domain.Channel) Key {
	return Key{GroupID: group.ID, ChannelID: channel.ID}
}

// Selection maps keys to denormalized selection records, remembering the
// order in which keys were first inserted. The zero value is empty.
type Selection struct {
	order   []Key
	records map[Key]domain.ChannelSelection
}

// Empty returns an empty selection
func Empty() Selection {
	return Selection{}
}

// Len returns the number of selected channels
func (s Selection) Len() int {
	return len(s.order)
}

// Has reports whether the key is selected
func (s Selection) Has(k Key) bool {
	_, ok := s.records[k]
	return ok
}

// IsSelected reports whether the channel of the group is selected
func (s Selection) IsSelected(group domain.Group, channel domain.Channel) bool {
	return s.Has(KeyOf(group, channel))
}

// Record returns the stored snapshot for a key
func (s Selection) Record(k Key) (domain.ChannelSelection, bool) {
	r, ok := s.records[k]
	return r, ok
}

// ToggleChannel removes the channel when it is selected and inserts a fresh
// snapshot otherwise.
func (s Selection) ToggleChannel(group domain.Group, channel domain.Channel) Selection {
	k := KeyOf(group, channel)
	if s.Has(k) {
		return s.without(map[Key]bool{k: true})
	}
	return s.with([]domain.ChannelSelection{snapshot(group, channel)})
}

// ToggleAllInGroup deselects every channel of the group when all of them are
// selected; otherwise it selects all of them. A partially selected group
// therefore always becomes fully selected. The predicate is evaluated once.
func (s Selection) ToggleAllInGroup(group domain.Group) Selection {
	if len(group.Channels) == 0 {
		return s
	}

	if s.IsGroupSelected(group) {
		drop := make(map[Key]bool, len(group.Channels))
		for _, ch := range group.Channels {
			drop[KeyOf(group, ch)] = true
		}
		return s.without(drop)
	}

	recs := make([]domain.ChannelSelection, 0, len(group.Channels))
	for _, ch := range group.Channels {
		recs = append(recs, snapshot(group, ch))
	}
	return s.with(recs)
}

// SelectedCount returns how many channels of the group are selected
func (s Selection) SelectedCount(group domain.Group) int {
	n := 0
	for _, ch := range group.Channels {
		if s.IsSelected(group, ch) {
			n++
		}
	}
	return n
}

// IsGroupSelected reports whether every channel of a non-empty group is selected
func (s Selection) IsGroupSelected(group domain.Group) bool {
	return len(group.Channels) > 0 && s.SelectedCount(group) == len(group.Channels)
}

// IsGroupIndeterminate reports a partial selection: 0 < selected < channels
func (s Selection) IsGroupIndeterminate(group domain.Group) bool {
	n := s.SelectedCount(group)
	return n > 0 && n < len(group.Channels)
}

// Clear returns an empty selection
func (s Selection) Clear() Selection {
	return Selection{}
}

// ToSubmissionList returns the selected records in insertion order
func (s Selection) ToSubmissionList() []domain.ChannelSelection {
	out := make([]domain.ChannelSelection, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.records[k])
	}
	return out
}

// KeepChannels copies the selection keeping only the given channel ids
func (s Selection) KeepChannels(channelIDs []string) Selection {
	keep := make(map[string]bool, len(channelIDs))
	for _, id := range channelIDs {
		keep[id] = true
	}
	drop := make(map[Key]bool)
	for _, k := range s.order {
		if !keep[k.ChannelID] {
			drop[k] = true
		}
	}
	return s.without(drop)
}

// Keys returns the selected keys in insertion order
func (s Selection) Keys() []Key {
	return append([]Key(nil), s.order...)
}

// with copies the selection and inserts or overwrites the records. An
// overwritten key keeps its original position.
func (s Selection) with(recs []domain.ChannelSelection) Selection {
	next := Selection{
		order:   make([]Key, len(s.order), len(s.order)+len(recs)),
		records: make(map[Key]domain.ChannelSelection, len(s.records)+len(recs)),
	}
	copy(next.order, s.order)
	for k, v := range s.records {
		next.records[k] = v
	}

	for _, r := range recs {
		k := Key{GroupID: r.GroupID, ChannelID: r.ChannelID}
		if _, exists := next.records[k]; !exists {
			next.order = append(next.order, k)
		}
		next.records[k] = r
	}
	return next
}

// without copies the selection minus the dropped keys
func (s Selection) without(drop map[Key]bool) Selection {
	next := Selection{
		order:   make([]Key, 0, len(s.order)),
		records: make(map[Key]domain.ChannelSelection, len(s.records)),
	}
	for _, k := range s.order {
		if drop[k] {
			continue
		}
		next.order = append(next.order, k)
		next.records[k] = s.records[k]
	}
	return next
}

func snapshot(group domain.Group, channel domain.Channel) domain.ChannelSelection {
	return domain.ChannelSelection{
		GroupID:     group.ID,
		GroupName:   group.Name,
		ChannelID:   channel.ID,
		ChannelName: channel.Name,
	}
}
