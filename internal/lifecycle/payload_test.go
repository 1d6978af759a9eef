package lifecycle

import (
	"testing"

	"github.com/bridge-yp/erp-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeStripsMarkup(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  plain  ", "plain"},
		{"<b>bold</b> text", "bold text"},
		{"<script>alert(1)</script>", ""},
		{"<script src=x>alert(1)", ""},
		{"<style>.x{color:red}</style>done", "done"},
		{"a < b", "a"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitize(tc.in), "input %q", tc.in)
	}
}

func TestSanitizedCollapsesEmptyPayload(t *testing.T) {
	p := &Payload{Reason: "  ", Recipient: "\t"}
	assert.Nil(t, p.sanitized())

	var nilPayload *Payload
	assert.Nil(t, nilPayload.sanitized())
}

func TestValidatePayloadRequirements(t *testing.T) {
	details := validatePayload(enums.OrderActionCancel, nil)
	require.Contains(t, details, "reason")

	details = validatePayload(enums.OrderActionDelete, &Payload{})
	require.Contains(t, details, "reason")

	details = validatePayload(enums.OrderActionDeliver, &Payload{Reason: "set"})
	require.Contains(t, details, "recipient")

	assert.Nil(t, validatePayload(enums.OrderActionShip, nil))
	assert.Nil(t, validatePayload(enums.OrderActionCancel, &Payload{Reason: "damaged"}))
}
