package mailer_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique/pkg/mailer"
	"boutique/pkg/rabbitmq"
)

func TestRenderOrderEmail(t *testing.T) {
	event := rabbitmq.OrderEvent{
		OrderID:         "ORD-1756700000000-AB12CD34E",
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		CustomerPhone:   "555-0101",
		ShippingAddress: "1 Main St, Springfield",
		OrderNotes:      "Leave at the door",
		TotalAmount:     decimal.RequireFromString("39.98"),
		CreatedAt:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Items: []rabbitmq.OrderEventItem{
			{
				ProductID:   7,
				ProductName: "Linen Dress",
				ImageURLs:   []string{"https://cdn.example/dress.jpg"},
				Quantity:    2,
				UnitPrice:   decimal.RequireFromString("19.99"),
				TotalPrice:  decimal.RequireFromString("39.98"),
			},
		},
	}

	body, err := mailer.RenderOrderEmail(event)
	require.NoError(t, err)

	assert.Contains(t, body, "ORD-1756700000000-AB12CD34E")
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "jane@example.com")
	assert.Contains(t, body, "1 Main St, Springfield")
	assert.Contains(t, body, "Leave at the door")
	assert.Contains(t, body, "Linen Dress")
	assert.Contains(t, body, "https://cdn.example/dress.jpg")
	// Prices always render with two decimal places.
	assert.Contains(t, body, "$19.99")
	assert.Contains(t, body, "$39.98")
	assert.Contains(t, body, "2026-08-30")
}

func TestRenderOrderEmail_NoNotesNoImages(t *testing.T) {
	event := rabbitmq.OrderEvent{
		OrderID:       "ORD-1-AAAAAAAAA",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		TotalAmount:   decimal.RequireFromString("10"),
		Items: []rabbitmq.OrderEventItem{
			{
				ProductID:   1,
				ProductName: "Hair Tie",
				Quantity:    1,
				UnitPrice:   decimal.RequireFromString("10"),
				TotalPrice:  decimal.RequireFromString("10"),
			},
		},
	}

	body, err := mailer.RenderOrderEmail(event)
	require.NoError(t, err)

	assert.NotContains(t, body, "Order Notes")
	assert.NotContains(t, body, "<img")
	assert.Contains(t, body, "$10.00")
}

func TestRenderOrderEmail_EscapesHTML(t *testing.T) {
	event := rabbitmq.OrderEvent{
		OrderID:      "ORD-1-AAAAAAAAA",
		CustomerName: "<script>alert(1)</script>",
		TotalAmount:  decimal.Zero,
	}

	body, err := mailer.RenderOrderEmail(event)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRenderContactEmail(t *testing.T) {
	body, err := mailer.RenderContactEmail(mailer.ContactMessage{
		FullName: "Bob Smith",
		Email:    "bob@example.com",
		Phone:    "555-0202",
		Message:  "Do you ship to Canada?",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Bob Smith")
	assert.Contains(t, body, "bob@example.com")
	assert.Contains(t, body, "555-0202")
	assert.Contains(t, body, "Do you ship to Canada?")
}
