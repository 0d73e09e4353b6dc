package actor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/brawl/internal/assets"
)

// Loader builds actors from character manifests.
type Loader struct {
	assets *assets.Manager
	log    *zap.Logger
}

// NewLoader creates a loader backed by an asset manager.
func NewLoader(m *assets.Manager, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{assets: m, log: log}
}

// Load creates a hidden actor for a character slot.
func (l *Loader) Load(slot int) (*Actor, error) {
	ch, err := l.assets.Character(slot)
	if err != nil {
		return nil, fmt.Errorf("loading character %d: %w", slot, err)
	}

	name := fmt.Sprintf("%s/%s", ch.Name, ch.Model)
	l.log.Debug("actor loaded",
		zap.Int("slot", slot),
		zap.String("name", name),
		zap.Int("clips", len(ch.Clips)),
	)
	return New(name, ch.Clips, l.log), nil
}
