package mailer

import (
	"fmt"
	"strings"
	"time"

	"github.com/hfchoice/storefront/internal/orders"
)

// FormatItems renders the requested lines as a bullet list: description,
// optional brand in parentheses, code and quantity. The output is
// deterministic for a given item slice.
func FormatItems(items []orders.Item) string {
	formatted := make([]string, 0, len(items))
	for _, item := range items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		description := item.Description
		if description == "" {
			description = "Unknown Product"
		}
		code := item.Code
		if code == "" {
			code = "N/A"
		}
		brand := ""
		if item.Brand != "" {
			brand = fmt.Sprintf(" (%s)", item.Brand)
		}
		formatted = append(formatted,
			fmt.Sprintf("• %s%s\n  Code: %s\n  Quantity: %d", description, brand, code, quantity))
	}
	return strings.Join(formatted, "\n\n")
}

// StaffNotification builds the message sent to the store inbox for a new
// quote request.
func StaffNotification(staffEmail string, order *orders.Order, at time.Time) Message {
	customer := order.CustomerName
	if customer == "" {
		customer = "Not provided"
	}
	phone := order.Phone
	if phone == "" {
		phone = "Not provided"
	}
	notes := ""
	if order.Notes != "" {
		notes = fmt.Sprintf("\nCustomer Notes: %s\n", order.Notes)
	}

	body := fmt.Sprintf(`You have received a new quote request:

Order ID: #%d
Customer: %s
Email: %s
Phone: %s
Date: %s

Order Details:
Total Items: %d

Items Requested:
%s
%s
Please review this request and respond with pricing and availability.
`, order.ID, customer, order.Email, phone, at.Format(time.RFC1123), order.TotalItems, FormatItems(order.Items), notes)

	return Message{
		To:      staffEmail,
		Subject: fmt.Sprintf("New Quote Request #%d from %s", order.ID, order.Email),
		Body:    body,
	}
}

// CustomerConfirmation builds the confirmation sent back to the requester.
func CustomerConfirmation(order *orders.Order, at time.Time) Message {
	notes := ""
	if order.Notes != "" {
		notes = fmt.Sprintf("\nYour Notes: %s\n", order.Notes)
	}

	body := fmt.Sprintf(`Thank you for your quote request!

Order ID: #%d
Date: %s

We have received your request for the following items:

Order Summary:
Total Items: %d

Items Requested:
%s
%s
What happens next:
• Our team will review your request
• We'll provide pricing and availability information
• You'll receive a response within 24 hours

You can track your order status by logging into your account.

If you have any questions, please reply to this email.

Best regards,
HF Choice Team
`, order.ID, at.Format(time.RFC1123), order.TotalItems, FormatItems(order.Items), notes)

	return Message{
		To:      order.Email,
		Subject: fmt.Sprintf("Quote Request Confirmation #%d - HF Choice", order.ID),
		Body:    body,
	}
}
