package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"boutique/pkg/rabbitmq"
)

// Config holds SMTP settings and the shop address that receives
// notifications.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	ShopEmail string
}

// Mailer sends HTML notification emails over SMTP.
type Mailer struct {
	dialer    *gomail.Dialer
	from      string
	shopEmail string
}

// New creates a Mailer from SMTP settings.
func New(cfg Config) *Mailer {
	return &Mailer{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:      cfg.From,
		shopEmail: cfg.ShopEmail,
	}
}

// ContactMessage is a contact-form submission to forward to the shop.
type ContactMessage struct {
	FullName string `json:"fullName" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=64"`
	Message  string `json:"message" validate:"required,max=5000"`
}

// SendOrderNotification emails the order details to the shop inbox.
func (m *Mailer) SendOrderNotification(event rabbitmq.OrderEvent) error {
	body, err := RenderOrderEmail(event)
	if err != nil {
		return fmt.Errorf("failed to render order email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.shopEmail)
	msg.SetHeader("Subject", fmt.Sprintf("New Order %s", event.OrderID))
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send order email for %s: %w", event.OrderID, err)
	}
	return nil
}

// SendContactNotification forwards a contact-form submission to the shop
// inbox, with reply-to set to the customer.
func (m *Mailer) SendContactNotification(contact ContactMessage) error {
	body, err := RenderContactEmail(contact)
	if err != nil {
		return fmt.Errorf("failed to render contact email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.shopEmail)
	msg.SetHeader("Reply-To", contact.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Contact form: %s", contact.FullName))
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}
	return nil
}

var orderTmpl = template.Must(template.New("order").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>New Order</title></head>
<body style="font-family:Arial,sans-serif;color:#333;background-color:#f8f9fa;margin:0;padding:0;">
  <div style="max-width:600px;margin:20px auto;background:#fff;border:1px solid #e9ecef;border-radius:8px;overflow:hidden;">
    <div style="background:#f1f3f5;padding:20px;text-align:center;">
      <h1>New Order Received</h1>
    </div>
    <div style="padding:20px;">
      <p><strong>Order ID:</strong> {{.OrderID}}</p>
      <p><strong>Order Date:</strong> {{.Date}}</p>
      <div style="background:#f8f9fa;padding:15px;border-radius:5px;margin:15px 0;">
        <h3>Customer</h3>
        <p><strong>Name:</strong> {{.CustomerName}}</p>
        <p><strong>Email:</strong> {{.CustomerEmail}}</p>
        <p><strong>Phone:</strong> {{.CustomerPhone}}</p>
      </div>
      <div style="background:#f8f9fa;padding:15px;border-radius:5px;margin:15px 0;">
        <h3>Shipping Address</h3>
        <p>{{.ShippingAddress}}</p>
      </div>
      <div style="background:#f8f9fa;padding:15px;border-radius:5px;margin:15px 0;">
        <h3>Items</h3>
        <table width="100%" cellpadding="0" cellspacing="0" style="border-collapse:collapse;">
          <thead>
            <tr style="background:#e9ecef;text-align:left;">
              <th style="padding:8px;">Product</th>
              <th style="padding:8px;text-align:right;">Price</th>
            </tr>
          </thead>
          <tbody>
            {{range .Items}}
            <tr style="border-bottom:1px solid #eee;">
              <td style="padding:10px;">
                {{if .Image}}<img src="{{.Image}}" alt="" width="60" height="60" style="border-radius:5px;vertical-align:middle;margin-right:8px;"/>{{end}}
                <strong>{{.ProductName}}</strong><br/>
                <span style="font-size:13px;color:#777;">ID: {{.ProductID}} &middot; Quantity: {{.Quantity}}</span>
              </td>
              <td style="padding:10px;text-align:right;">
                <span style="font-size:13px;">${{.UnitPrice}} &times; {{.Quantity}}</span><br/>
                <strong>${{.TotalPrice}}</strong>
              </td>
            </tr>
            {{end}}
            <tr>
              <td style="padding:10px;text-align:right;font-weight:bold;">Total:</td>
              <td style="padding:10px;text-align:right;font-weight:bold;">${{.TotalAmount}}</td>
            </tr>
          </tbody>
        </table>
      </div>
      {{if .OrderNotes}}
      <div style="background:#f8f9fa;padding:15px;border-radius:5px;margin:15px 0;">
        <h3>Order Notes</h3>
        <p>{{.OrderNotes}}</p>
      </div>
      {{end}}
    </div>
  </div>
</body>
</html>`))

var contactTmpl = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Contact Form Submission</title></head>
<body style="font-family:Arial,sans-serif;color:#333;">
  <div style="max-width:600px;margin:0 auto;padding:20px;">
    <div style="background:#f8f9fa;padding:20px;text-align:center;border-radius:8px;">
      <h1>New Contact Form Submission</h1>
    </div>
    <div style="background:#fff;padding:20px;border:1px solid #e9ecef;">
      <div style="background:#f8f9fa;padding:15px;border-radius:5px;margin:15px 0;">
        <p><strong>Name:</strong> {{.FullName}}</p>
        <p><strong>Email:</strong> {{.Email}}</p>
        <p><strong>Phone:</strong> {{.Phone}}</p>
        <p><strong>Date:</strong> {{.Date}}</p>
      </div>
      <div style="background:#e3f2fd;padding:15px;border-radius:5px;border-left:4px solid #2196f3;">
        <h3>Message</h3>
        <p>{{.Message}}</p>
      </div>
    </div>
  </div>
</body>
</html>`))

type orderEmailItem struct {
	ProductID   uint
	ProductName string
	Image       string
	Quantity    int
	UnitPrice   string
	TotalPrice  string
}

// RenderOrderEmail renders the order notification HTML body.
func RenderOrderEmail(event rabbitmq.OrderEvent) (string, error) {
	items := make([]orderEmailItem, 0, len(event.Items))
	for _, item := range event.Items {
		image := ""
		if len(item.ImageURLs) > 0 {
			image = item.ImageURLs[0]
		}
		items = append(items, orderEmailItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Image:       image,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			TotalPrice:  item.TotalPrice.StringFixed(2),
		})
	}

	date := event.CreatedAt
	if date.IsZero() {
		date = time.Now()
	}

	var buf bytes.Buffer
	err := orderTmpl.Execute(&buf, map[string]interface{}{
		"OrderID":         event.OrderID,
		"Date":            date.Format("2006-01-02"),
		"CustomerName":    event.CustomerName,
		"CustomerEmail":   event.CustomerEmail,
		"CustomerPhone":   event.CustomerPhone,
		"ShippingAddress": event.ShippingAddress,
		"OrderNotes":      event.OrderNotes,
		"TotalAmount":     event.TotalAmount.StringFixed(2),
		"Items":           items,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderContactEmail renders the contact notification HTML body.
func RenderContactEmail(contact ContactMessage) (string, error) {
	var buf bytes.Buffer
	err := contactTmpl.Execute(&buf, map[string]interface{}{
		"FullName": contact.FullName,
		"Email":    contact.Email,
		"Phone":    contact.Phone,
		"Message":  contact.Message,
		"Date":     time.Now().Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
