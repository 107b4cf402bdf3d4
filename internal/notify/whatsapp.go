// Package notify builds the pre-filled WhatsApp handoff link generated when
// a work order is assigned. Delivery happens out of band in a messaging app;
// there is no confirmation or retry.
package notify

import (
	"fmt"
	"net/url"
)

// AssignmentLink returns a recipient-agnostic wa.me deep link whose text
// carries the order id, assignee, asset name and fault description.
func AssignmentLink(orderID, technician, assetName, description string) string {
	text := fmt.Sprintf("*NUEVA ASIGNACIÓN OT #%s*\nResp: %s\nEquipo: %s\nFalla: %s",
		orderID, technician, assetName, description)
	return "https://wa.me/?text=" + url.QueryEscape(text)
}
