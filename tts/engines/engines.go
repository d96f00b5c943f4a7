// Package engines selects and constructs speech-synthesis backends.
package engines

import (
	"fmt"

	"github.com/voxscript/voxscript/tts"
	"github.com/voxscript/voxscript/tts/engines/clova"
	"github.com/voxscript/voxscript/tts/engines/mock"
)

// New constructs the engine named in the configuration.
func New(cfg tts.Config) (tts.Engine, error) {
	switch cfg.Engine {
	case "clova":
		return clova.New(cfg.Clova), nil
	case "mock":
		return mock.New(cfg.Mock), nil
	default:
		return nil, fmt.Errorf("%w: %q", tts.ErrEngineUnknown, cfg.Engine)
	}
}

// Names lists the selectable engine identifiers.
func Names() []string {
	return []string{"clova", "mock"}
}
