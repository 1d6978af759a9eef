package lifecycle

import (
	"strings"

	"github.com/bridge-yp/erp-backend/pkg/enums"
)

// Payload carries the optional action-specific fields supplied by the actor.
type Payload struct {
	Reason    string `json:"reason,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Note      string `json:"note,omitempty"`
}

// sanitize trims whitespace and strips angle-bracketed markup so raw HTML never
// reaches the chat transcript. Script and style elements are removed together
// with their contents, so a value that is nothing but such markup collapses to
// the empty string.
func sanitize(value string) string {
	value = strings.TrimSpace(value)
	if !strings.ContainsAny(value, "<>") {
		return value
	}
	value = dropElementBlocks(value, "script", "style")
	var b strings.Builder
	b.Grow(len(value))
	depth := 0
	for _, r := range value {
		switch r {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// dropElementBlocks removes each named element and everything inside it. An
// opening tag with no matching close swallows the rest of the string.
func dropElementBlocks(value string, tags ...string) string {
	lower := strings.ToLower(value)
	for _, tag := range tags {
		open := "<" + tag
		closing := "</" + tag + ">"
		for {
			start := strings.Index(lower, open)
			if start < 0 {
				break
			}
			rest := strings.Index(lower[start:], closing)
			if rest < 0 {
				value = value[:start]
				lower = lower[:start]
				break
			}
			end := start + rest + len(closing)
			value = value[:start] + value[end:]
			lower = lower[:start] + lower[end:]
		}
	}
	return value
}

func (p *Payload) sanitized() *Payload {
	if p == nil {
		return nil
	}
	clean := Payload{
		Reason:    sanitize(p.Reason),
		Recipient: sanitize(p.Recipient),
		Note:      sanitize(p.Note),
	}
	if clean == (Payload{}) {
		return nil
	}
	return &clean
}

// validatePayload enforces the per-action payload requirements against the
// already-sanitized payload. Returns field -> problem on failure.
func validatePayload(action enums.OrderAction, payload *Payload) map[string]string {
	missing := func(field string) map[string]string {
		return map[string]string{field: "is required"}
	}

	switch action {
	case enums.OrderActionCancel, enums.OrderActionDelete:
		if payload == nil || payload.Reason == "" {
			return missing("reason")
		}
	case enums.OrderActionDeliver:
		if payload == nil || payload.Recipient == "" {
			return missing("recipient")
		}
	}
	return nil
}
