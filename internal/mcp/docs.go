package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `swipecount keeps an ordered list of bounded tally counters. Exactly one counter is active.

Core concepts:
- Counter: {id, count, targetValue, name?, color?}. Gestures keep count within [0, targetValue].
- Active counter: tap and vertical swipes act on it; horizontal swipes move the selection.
- There is always at least one counter; removing the last one is refused.

Typical workflow:
1) list_counters to orient.
2) tap / swipe to count the way a user would, or update_counter to set values directly.
3) set_target to change a goal from user-entered text.
4) recent_activity to see what changed and when.

Docs:
- swipecount://docs/gestures (how drags become counts)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "swipecount://docs/gestures",
		Name:        "docs_gestures",
		Title:       "Gesture rules",
		Description: "How taps and drags map to count changes and counter switches.",
		Content: `# Gesture rules

All distances are in screen units; y grows downward; velocity is units per millisecond.

## Tap
Movement under 5 units, held at most 250ms: increment by one.

## Vertical drag (|dy| >= |dx|)
- While dragging, |dy| > 10 shows an advisory up/down hint. Nothing changes.
- On release, |dy| > 50 changes the count by floor(1.15^(|dy|/50)) steps.
  Up (dy < 0) increments, down decrements. The result is clamped to [0, target].

| |dy| | steps |
|---|---|
| 100 | 1 |
| 500 | 4 |
| 830 | 10 |

## Horizontal drag (|dx| > |dy|)
On release, |dx| > 100 and |vx| > 0.1 switch counters.
Rightward (dx > 0) selects the previous counter, leftward the next.
Switching at either end does nothing.

## Suppression
Gestures starting on the value label, or made while an edit is open, do nothing.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
