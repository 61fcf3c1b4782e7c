package engine

import (
	"fmt"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/view"
)

// renderActions renders the card-level action set as buttons inside a stack.
// Actions beyond the host's limit are dropped with a single
// MAX_ACTIONS_EXCEEDED warning.
func renderActions(p *Pass, actions []card.Action) *view.Node {
	if len(actions) == 0 {
		return nil
	}

	limit := p.Host.Actions.MaxActions
	if len(actions) > limit {
		p.Warn(WarningMaxActionsExceeded, fmt.Sprintf("Some actions were not rendered due to exceeding the maximum number (%d) of actions allowed", limit))
		actions = actions[:limit]
	}

	set := view.New(view.KindStack)
	set.SetAttr("role", "actions")
	for _, action := range actions {
		set.Append(renderAction(p, action))
	}
	if len(set.Children) == 0 {
		return nil
	}
	return set
}

func renderAction(p *Pass, action card.Action) *view.Node {
	if !p.interactivityAllowed(string(action.Type)) {
		return nil
	}

	node := view.New(view.KindButton)
	node.Text = action.Title
	key := action.ID
	if key == "" {
		key = node.ID
	}
	node.Name = key
	node.SetAttr("action-type", string(action.Type))
	if action.URL != "" {
		node.SetAttr("url", action.URL)
	}
	p.Card.registerAction(key, action)
	return node
}
