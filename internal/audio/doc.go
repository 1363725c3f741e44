// Package audio holds the bundled alarm clip catalogue and the preview
// player contract.
//
// The routine engine only records a routine's selectedAudioId; it never
// plays anything. A host that can produce sound supplies its own Player.
// PreviewTracker is the headless Player used by the CLI: it tracks which
// clip would be playing without touching an audio device.
package audio
