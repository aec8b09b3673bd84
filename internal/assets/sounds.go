package assets

import (
	"errors"
	"fmt"
)

// ErrUnknownSound is returned when a cue names a sound that was never registered.
var ErrUnknownSound = errors.New("assets: unknown sound")

// SoundDef is the synthesis recipe of one sound: one entry per note for tone,
// volume (0-7) and effect; shorter strings repeat their last entry. Speed is
// the length of one note in 1/120 s units.
type SoundDef struct {
	Notes  string `yaml:"notes"`
	Tone   string `yaml:"tone"`
	Volume string `yaml:"volume"`
	Effect string `yaml:"effect"`
	Speed  int    `yaml:"speed"`
}

// withDefaults fills empty fields with the classic chiptune defaults.
func (d SoundDef) withDefaults() SoundDef {
	if d.Tone == "" {
		d.Tone = "s"
	}
	if d.Volume == "" {
		d.Volume = "4"
	}
	if d.Effect == "" {
		d.Effect = "nnnnf"
	}
	if d.Speed <= 0 {
		d.Speed = 7
	}
	return d
}

// Sound is a registered, parsed sound.
type Sound struct {
	ID      int
	Name    string
	Speed   int
	Notes   []int
	Tones   []byte
	Volumes []int
	Effects []byte
}

// SoundRegistry maps logical sound names to sequential ids.
type SoundRegistry struct {
	byName map[string]*Sound
	byID   []*Sound
}

// NewSoundRegistry creates an empty sound registry.
func NewSoundRegistry() *SoundRegistry {
	return &SoundRegistry{byName: make(map[string]*Sound)}
}

// Register parses def and assigns the next id. Registering an existing name
// returns its id and ignores def.
func (r *SoundRegistry) Register(name string, def SoundDef) (int, error) {
	if s, ok := r.byName[name]; ok {
		return s.ID, nil
	}

	def = def.withDefaults()
	notes, err := ParseNotes(def.Notes)
	if err != nil {
		return 0, fmt.Errorf("sound %q: %w", name, err)
	}
	tones, err := expand(def.Tone, "tspn", "tone", len(notes))
	if err != nil {
		return 0, fmt.Errorf("sound %q: %w", name, err)
	}
	vols, err := expand(def.Volume, "01234567", "volume", len(notes))
	if err != nil {
		return 0, fmt.Errorf("sound %q: %w", name, err)
	}
	effects, err := expand(def.Effect, "nsvf", "effect", len(notes))
	if err != nil {
		return 0, fmt.Errorf("sound %q: %w", name, err)
	}

	volumes := make([]int, len(vols))
	for i, v := range vols {
		volumes[i] = int(v - '0')
	}

	s := &Sound{
		ID:      len(r.byID),
		Name:    name,
		Speed:   def.Speed,
		Notes:   notes,
		Tones:   tones,
		Volumes: volumes,
		Effects: effects,
	}
	r.byName[name] = s
	r.byID = append(r.byID, s)
	return s.ID, nil
}

// Lookup returns a registered sound by name.
func (r *SoundRegistry) Lookup(name string) (*Sound, error) {
	s, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	return s, nil
}

// ByID returns a registered sound by id.
func (r *SoundRegistry) ByID(id int) (*Sound, bool) {
	if id < 0 || id >= len(r.byID) {
		return nil, false
	}
	return r.byID[id], true
}

// Len returns the number of registered sounds.
func (r *SoundRegistry) Len() int {
	return len(r.byID)
}
