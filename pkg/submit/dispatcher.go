package submit

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-cardrender/internal/logging"
	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/engine"
)

// Submission is handed to the OnSubmit callback once every input is valid.
// Data is the action's data merged with the input values; inputs win on
// key collisions.
type Submission struct {
	Action card.Action
	Data   map[string]any
	Result Result
}

// Dispatcher adapts callbacks into an engine.ActionHandler that runs Collect
// before every submit.
type Dispatcher struct {
	OnSubmit  func(ctx context.Context, submission Submission) error
	OnOpenURL func(ctx context.Context, action card.Action) error
	Log       *logrus.Entry
}

var _ engine.ActionHandler = (*Dispatcher)(nil)

// Submit validates the card and forwards the merged payload. Validation
// failures are returned as Errors without calling OnSubmit.
func (d *Dispatcher) Submit(ctx context.Context, rc *engine.RenderedCard, action card.Action, live map[string]string) error {
	result, err := Collect(rc, live)
	if err != nil {
		d.logger().WithField("action", action.ID).WithError(err).Info("submit rejected")
		return err
	}
	if d.OnSubmit == nil {
		return nil
	}

	data := make(map[string]any, len(action.Data)+len(result.Values))
	for key, value := range action.Data {
		data[key] = value
	}
	for key, value := range result.Values {
		data[key] = value
	}
	return d.OnSubmit(ctx, Submission{Action: action, Data: data, Result: result})
}

// OpenURL forwards to OnOpenURL.
func (d *Dispatcher) OpenURL(ctx context.Context, action card.Action) error {
	if d.OnOpenURL == nil {
		return errors.New("submit: no OpenURL callback configured")
	}
	return d.OnOpenURL(ctx, action)
}

func (d *Dispatcher) logger() *logrus.Entry {
	if d.Log != nil {
		return d.Log
	}
	return logging.Named("submit")
}
