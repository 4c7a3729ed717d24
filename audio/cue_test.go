package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tilepath/navigation"
	"github.com/lixenwraith/tilepath/parameter"
)

// drain streams s to completion and returns every left-channel sample
func drain(s beep.Streamer) []float64 {
	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
}

func TestFoundCue_Length(t *testing.T) {
	samples := drain(FoundCue())
	assert.Equal(t, 2*sampleRate.N(parameter.AudioFoundNoteDuration), len(samples))
}

func TestGiveUpCue_LengthAndGain(t *testing.T) {
	samples := drain(GiveUpCue())
	require.Equal(t, sampleRate.N(parameter.AudioGiveUpDuration), len(samples))

	peak := 0.0
	for _, v := range samples {
		peak = math.Max(peak, math.Abs(v))
	}
	assert.InDelta(t, parameter.AudioCueGain, peak, 1e-9)
}

func TestApplyEnvelope_RampsAtEdges(t *testing.T) {
	buf := make(floatBuffer, sampleRate.N(parameter.AudioGiveUpDuration))
	for i := range buf {
		buf[i] = 1
	}
	applyEnvelope(buf, parameter.AudioAttack, parameter.AudioRelease)

	assert.Zero(t, buf[0])
	assert.Less(t, buf[len(buf)-1], 0.01)
	assert.Equal(t, 1.0, buf[len(buf)/2])
}

func TestCueFor(t *testing.T) {
	_, ok := CueFor(navigation.OutcomeTrivial)
	assert.False(t, ok)

	s, ok := CueFor(navigation.OutcomeFound)
	require.True(t, ok)
	assert.NotEmpty(t, drain(s))

	s, ok = CueFor(navigation.OutcomeExhausted)
	require.True(t, ok)
	assert.NotEmpty(t, drain(s))
}

func TestPlayer_MutedUntilStarted(t *testing.T) {
	p := NewPlayer()
	assert.False(t, p.Enabled())
	assert.Equal(t, "audio", p.Name())

	p.PlayOutcome(navigation.OutcomeFound)
	assert.Zero(t, p.mixer.Len())
	assert.NoError(t, p.Stop())
}
