package audio

import (
	"time"

	"github.com/roach88/ritual/internal/model"
)

// Clip is one entry of the bundled catalogue.
type Clip struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
	Icon     string        `json:"icon"`
}

var bundled = []Clip{
	{ID: "alarm-chime", Name: "Alarm Chime", Duration: 5 * time.Second, Icon: "alarm"},
	{ID: "morning-birds", Name: "Morning Birds", Duration: 6 * time.Second, Icon: "sunny"},
	{ID: "ocean-waves", Name: "Ocean Waves", Duration: 8 * time.Second, Icon: "water"},
	{ID: "energetic-beat", Name: "Energetic Beat", Duration: 4 * time.Second, Icon: "musical-notes"},
	{ID: "calm-piano", Name: "Calm Piano", Duration: 6 * time.Second, Icon: "musical-note"},
}

// BundledClips returns a copy of the clips shipped with the app.
func BundledClips() []Clip {
	out := make([]Clip, len(bundled))
	copy(out, bundled)
	return out
}

// IsBundled reports whether id names a bundled clip.
func IsBundled(id string) bool {
	_, ok := lookup(id)
	return ok
}

func lookup(id string) (Clip, bool) {
	for _, c := range bundled {
		if c.ID == id {
			return c, true
		}
	}
	return Clip{}, false
}

// Entry is a selectable clip, bundled or user supplied.
type Entry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Seconds  int    `json:"duration"`
	Icon     string `json:"icon,omitempty"`
	Bundled  bool   `json:"bundled"`
	Premium  bool   `json:"isPremium"`
	Location string `json:"location,omitempty"`
}

// Catalog lists bundled clips first, then library clips in stored order.
// A library clip whose id collides with a bundled one is skipped.
func Catalog(library []model.AudioClip) []Entry {
	out := make([]Entry, 0, len(bundled)+len(library))
	for _, c := range bundled {
		out = append(out, Entry{
			ID:      c.ID,
			Name:    c.Name,
			Seconds: int(c.Duration / time.Second),
			Icon:    c.Icon,
			Bundled: true,
		})
	}
	for _, c := range library {
		if IsBundled(c.ID) {
			continue
		}
		loc := c.LocalPath
		if loc == "" {
			loc = c.RemoteURL
		}
		out = append(out, Entry{
			ID:       c.ID,
			Name:     c.Name,
			Seconds:  c.Duration,
			Premium:  c.IsPremium,
			Location: loc,
		})
	}
	return out
}

// Find looks id up in the merged catalogue.
func Find(library []model.AudioClip, id string) (Entry, bool) {
	for _, e := range Catalog(library) {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
