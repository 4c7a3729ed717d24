package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/tilepath/navigation"
	"github.com/lixenwraith/tilepath/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Waveform types
const (
	waveSine = iota
	waveSquare
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator generates raw waveform samples
func oscillator(waveType int, freq float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / float64(sampleRate)

	for i := range buf {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		}
		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies linear attack/release in place
func applyEnvelope(buf floatBuffer, attack, release time.Duration) {
	total := len(buf)
	attackSamples := sampleRate.N(attack)
	releaseSamples := sampleRate.N(release)

	releaseStart := max(total-releaseSamples, attackSamples)
	for i := range buf {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// streamer plays buf once on both channels, scaled by gain
func (buf floatBuffer) streamer(gain float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(buf) {
			return 0, false
		}
		n := copyStereo(samples, buf[pos:], gain)
		pos += n
		return n, true
	})
}

func copyStereo(dst [][2]float64, src floatBuffer, gain float64) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		v := src[i] * gain
		dst[i] = [2]float64{v, v}
	}
	return n
}

func tone(waveType int, freq float64, d time.Duration) beep.Streamer {
	buf := oscillator(waveType, freq, sampleRate.N(d))
	applyEnvelope(buf, parameter.AudioAttack, parameter.AudioRelease)
	return buf.streamer(parameter.AudioCueGain)
}

// FoundCue is a short rising two-note chime
func FoundCue() beep.Streamer {
	return beep.Seq(
		tone(waveSine, parameter.AudioFoundFreqLow, parameter.AudioFoundNoteDuration),
		tone(waveSine, parameter.AudioFoundFreqHigh, parameter.AudioFoundNoteDuration),
	)
}

// GiveUpCue is a low square buzz
func GiveUpCue() beep.Streamer {
	return tone(waveSquare, parameter.AudioGiveUpFreq, parameter.AudioGiveUpDuration)
}

// CueFor maps a search outcome to its cue; trivial requests are silent
func CueFor(o navigation.Outcome) (beep.Streamer, bool) {
	switch o {
	case navigation.OutcomeFound:
		return FoundCue(), true
	case navigation.OutcomeExhausted:
		return GiveUpCue(), true
	default:
		return nil, false
	}
}
