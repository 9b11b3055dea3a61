package constants

const NumChannels = 16

const NumPitches = 128

// microseconds per beat when a file carries no tempo event (120 bpm)
const DefaultTempo = 500000

const EnvPrefix = "mididiff"

const ChannelPrompt = "Which MIDI channel do you want to compare? (0 <= i <= 15)"
