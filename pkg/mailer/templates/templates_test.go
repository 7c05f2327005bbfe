package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_PaymentReceipt(t *testing.T) {
	paidAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	data := NewReceiptData("Art School", "u@test.com", "pi_123", []string{"Watercolor Basics", "Ink <Drawing>"}, 45, "usd",
		WithPaidAt(paidAt), WithSupportURL("https://example.test/support"))

	subject, text, html, err := Render(PaymentReceipt, ToMap(data))
	require.NoError(t, err)

	assert.Equal(t, "Art School payment receipt pi_123", subject)
	assert.Contains(t, text, "Classes: Watercolor Basics, Ink <Drawing>")
	assert.Contains(t, text, "Amount: 45.00 USD")
	assert.Contains(t, text, "14 March 2026, 09:30 UTC")
	assert.Contains(t, html, "<li>Ink &lt;Drawing&gt;</li>")
	assert.Contains(t, html, `href="https://example.test/support"`)
}

func TestRender_Defaults(t *testing.T) {
	data := NewReceiptData("", "u@test.com", "pi_9", nil, 10, "usd")

	subject, text, _, err := Render(PaymentReceipt, ToMap(data))
	require.NoError(t, err)

	assert.Equal(t, "Art School payment receipt pi_9", subject)
	assert.Contains(t, text, "Paid at: just now")
	assert.NotContains(t, text, "Questions?")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", nil)
	assert.Error(t, err)
}
