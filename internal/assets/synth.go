package assets

import (
	"encoding/binary"
	"math"
)

// SampleRate is the PCM rate produced by Synthesize.
const SampleRate = 44100

// ticksPerSecond is the unit of SoundDef.Speed.
const ticksPerSecond = 120

// maxAmplitude keeps four simultaneous channels from clipping.
const maxAmplitude = 0.25

// SamplesPerNote returns how many frames one note of s lasts.
func (s *Sound) SamplesPerNote(sampleRate int) int {
	return s.Speed * sampleRate / ticksPerSecond
}

// Synthesize renders the sound as 16-bit signed little-endian stereo PCM.
func Synthesize(s *Sound, sampleRate int) []byte {
	perNote := s.SamplesPerNote(sampleRate)
	out := make([]byte, 0, perNote*len(s.Notes)*4)
	frame := make([]byte, 4)

	phase := 0.0
	noise := uint16(0x8001)
	prevFreq := 0.0

	for i, n := range s.Notes {
		if n == RestNote {
			for j := 0; j < perNote; j++ {
				out = append(out, 0, 0, 0, 0)
			}
			prevFreq = 0
			continue
		}

		freq := NoteFrequency(n)
		startFreq := freq
		if s.Effects[i] == EffectSlide && prevFreq > 0 {
			startFreq = prevFreq
		}
		volume := float64(s.Volumes[i]) / 7 * maxAmplitude

		for j := 0; j < perNote; j++ {
			t := float64(j) / float64(perNote)
			f := startFreq + (freq-startFreq)*t
			gain := volume

			switch s.Effects[i] {
			case EffectVibrato:
				sec := float64(j) / float64(sampleRate)
				f *= 1 + 0.015*math.Sin(2*math.Pi*6*sec)
			case EffectFadeout:
				gain *= 1 - t
			}

			prev := phase
			phase += f / float64(sampleRate)
			phase -= math.Floor(phase)

			var v float64
			switch s.Tones[i] {
			case ToneTriangle:
				v = 4*math.Abs(phase-0.5) - 1
			case TonePulse:
				v = square(phase, 0.25)
			case ToneNoise:
				// Clock the shift register once per waveform period.
				if phase < prev {
					bit := (noise ^ (noise >> 1)) & 1
					noise = (noise >> 1) | (bit << 14)
				}
				v = float64(noise&1)*2 - 1
			default:
				v = square(phase, 0.5)
			}

			sample := int16(v * gain * math.MaxInt16)
			binary.LittleEndian.PutUint16(frame[0:], uint16(sample))
			binary.LittleEndian.PutUint16(frame[2:], uint16(sample))
			out = append(out, frame...)
		}
		prevFreq = freq
	}
	return out
}

func square(phase, duty float64) float64 {
	if phase < duty {
		return 1
	}
	return -1
}
