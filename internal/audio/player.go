package audio

import (
	"sync"

	"go.uber.org/zap"
)

// Player previews alarm clips.
type Player interface {
	// PlayPreview stops any current preview and starts id. It returns
	// false when id cannot be played.
	PlayPreview(id string) bool
	StopPreview()
	CurrentlyPlaying() (string, bool)
}

// PreviewTracker is a Player that records state without producing sound.
// Only bundled clips are playable.
type PreviewTracker struct {
	mu      sync.Mutex
	current string
	logger  *zap.Logger
}

var _ Player = (*PreviewTracker)(nil)

// NewPreviewTracker returns an idle tracker. A nil logger is replaced by a
// no-op logger.
func NewPreviewTracker(logger *zap.Logger) *PreviewTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreviewTracker{logger: logger}
}

func (p *PreviewTracker) PlayPreview(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = ""
	if !IsBundled(id) {
		p.logger.Debug("No bundled source for clip", zap.String("clip", id))
		return false
	}
	p.current = id
	p.logger.Debug("Preview started", zap.String("clip", id))
	return true
}

func (p *PreviewTracker) StopPreview() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = ""
}

func (p *PreviewTracker) CurrentlyPlaying() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.current != ""
}
