package delayq

import (
	"fmt"

	"github.com/dmitrymomot/actormesh/core/engine"
)

// EnginePoster adapts *core/engine.Engine to Poster: engine.Post reports
// acceptance via a PostResult rather than a plain error, so this narrows
// that into the single error Poster expects, surfacing the reject reason
// in the error text.
type EnginePoster struct {
	Engine *engine.Engine
}

func (p EnginePoster) Post(processorID string, msg any) error {
	result, err := p.Engine.Post(processorID, msg)
	if err != nil {
		return err
	}
	if !result.Accepted {
		return fmt.Errorf("delayq: delivery rejected (reason=%d)", result.Reason)
	}
	return nil
}
