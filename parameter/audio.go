package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Path Cues
const (
	// AudioCueGain scales every cue sample
	AudioCueGain = 0.3

	// AudioFoundNoteDuration is the length of each note of the arrival chime
	AudioFoundNoteDuration = 80 * time.Millisecond

	// AudioFoundFreqLow, AudioFoundFreqHigh are the rising chime notes (Hz)
	AudioFoundFreqLow  = 660.0
	AudioFoundFreqHigh = 990.0

	// AudioGiveUpDuration is the length of the give-up buzz
	AudioGiveUpDuration = 150 * time.Millisecond

	// AudioGiveUpFreq is the buzz pitch (Hz)
	AudioGiveUpFreq = 110.0

	// AudioAttack, AudioRelease shape every cue envelope
	AudioAttack  = 5 * time.Millisecond
	AudioRelease = 30 * time.Millisecond
)
