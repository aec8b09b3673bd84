package assets

import (
	"fmt"
	"math"
	"strings"
)

// RestNote marks a silent step in a parsed note sequence.
const RestNote = -1

// Tone waveforms.
const (
	ToneTriangle = 't'
	ToneSquare   = 's'
	TonePulse    = 'p'
	ToneNoise    = 'n'
)

// Effects applied across one note.
const (
	EffectNone    = 'n'
	EffectSlide   = 's'
	EffectVibrato = 'v'
	EffectFadeout = 'f'
)

var semitones = map[byte]int{
	'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11,
}

// ParseNotes converts a note string such as "c3e3g3c4c4" or "c#2rb-1" into
// note numbers (octave*12 + semitone, octaves 0-4). "r" is a rest. Spaces are ignored.
func ParseNotes(s string) ([]int, error) {
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	var notes []int
	for i := 0; i < len(s); {
		ch := s[i]
		if ch == 'r' {
			notes = append(notes, RestNote)
			i++
			continue
		}
		semi, ok := semitones[ch]
		if !ok {
			return nil, fmt.Errorf("assets: invalid note %q at %d in %q", ch, i, s)
		}
		i++
		if i < len(s) && (s[i] == '#' || s[i] == '-') {
			if s[i] == '#' {
				semi++
			} else {
				semi--
			}
			i++
		}
		if i >= len(s) || s[i] < '0' || s[i] > '4' {
			return nil, fmt.Errorf("assets: missing octave after note %q in %q", ch, s)
		}
		octave := int(s[i] - '0')
		i++
		n := octave*12 + semi
		if n < 0 {
			n = 0
		}
		notes = append(notes, n)
	}
	if len(notes) == 0 {
		return nil, fmt.Errorf("assets: empty note string")
	}
	return notes, nil
}

// NoteFrequency returns the pitch of a note number in Hz; "a2" is 440 Hz.
func NoteFrequency(n int) float64 {
	return 440 * math.Pow(2, float64(n-33)/12)
}

// expand validates a per-note parameter string and stretches it to count
// entries, repeating the last character when it is shorter.
func expand(s, allowed, field string, count int) ([]byte, error) {
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if s == "" {
		return nil, fmt.Errorf("assets: empty %s", field)
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(allowed, rune(s[i])) {
			return nil, fmt.Errorf("assets: invalid %s %q in %q", field, s[i], s)
		}
	}
	out := make([]byte, count)
	for i := range out {
		if i < len(s) {
			out[i] = s[i]
		} else {
			out[i] = s[len(s)-1]
		}
	}
	return out, nil
}
