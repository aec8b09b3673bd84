package desktop

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/smolgame/internal/assets"
	"github.com/vovakirdan/smolgame/internal/core"
)

// Channels is the number of sound channels; each plays one sound at a time.
const Channels = 4

// mixer plays sound cues on a fixed set of channels.
type mixer struct {
	ctx     *audio.Context
	sounds  *assets.SoundRegistry
	logger  *log.Logger
	pcm     map[string][]byte // Synthesized sounds by name
	players [Channels]*audio.Player
	current [Channels]string
}

func newMixer(sounds *assets.SoundRegistry, logger *log.Logger) *mixer {
	// Only one audio context may exist per process.
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(assets.SampleRate)
	}
	return &mixer{
		ctx:    ctx,
		sounds: sounds,
		logger: logger,
		pcm:    make(map[string][]byte),
	}
}

// play starts the cue's sound on its channel, replacing whatever the channel
// was playing. A cue for the sound a channel is still playing is ignored, so
// holding the sound key does not restart it every tick.
func (m *mixer) play(c core.Cue) {
	if c.Channel < 0 || c.Channel >= Channels {
		m.logger.Warn("sound channel out of range", "sound", c.Sound, "channel", c.Channel)
		return
	}

	p := m.players[c.Channel]
	if p != nil && m.current[c.Channel] == c.Sound && p.IsPlaying() {
		return
	}

	data, err := m.samples(c.Sound)
	if err != nil {
		m.logger.Warn("cannot play sound", "error", err)
		return
	}

	if p != nil {
		p.Pause()
		_ = p.Close()
	}
	p = m.ctx.NewPlayerFromBytes(data)
	p.Play()
	m.players[c.Channel] = p
	m.current[c.Channel] = c.Sound
}

// samples returns the PCM of a sound, synthesizing it on first use.
func (m *mixer) samples(name string) ([]byte, error) {
	if data, ok := m.pcm[name]; ok {
		return data, nil
	}
	s, err := m.sounds.Lookup(name)
	if err != nil {
		return nil, err
	}
	data := assets.Synthesize(s, assets.SampleRate)
	m.pcm[name] = data
	return data, nil
}

// stop halts every channel.
func (m *mixer) stop() {
	for i, p := range m.players {
		if p != nil {
			p.Pause()
			_ = p.Close()
			m.players[i] = nil
		}
	}
}
