package queue

import (
	"fmt"
	"strings"

	"github.com/iliyamo/event-ticketing/internal/model"
)

const dateLayout = "Mon 02 Jan 2006 15:04 MST"

// compose builds the mail for n with the rendered ticket attached.
func compose(n model.Notification, pdf []byte) model.Mail {
	var subject string
	var b strings.Builder

	name := n.RecipientName
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\n\n", name)

	switch n.Kind {
	case model.NotifyOrganizerPass:
		subject = fmt.Sprintf("You are organizing %s", n.EventName)
		fmt.Fprintf(&b, "You were added as an organizer of %s on %s.\n", n.EventName, n.EventStartsAt.UTC().Format(dateLayout))
		b.WriteString("Your personal pass is attached.\n")
		if n.DiscountCode != "" {
			fmt.Fprintf(&b, "\nShare your discount code %s for %d%% off.\n", n.DiscountCode, n.DiscountPct)
		}
		if len(n.InviteCodes) > 0 {
			fmt.Fprintf(&b, "\nInvitation codes (%d):\n", len(n.InviteCodes))
			for _, c := range n.InviteCodes {
				fmt.Fprintf(&b, "  %s\n", c)
			}
		}
	default:
		subject = fmt.Sprintf("Your ticket for %s", n.EventName)
		fmt.Fprintf(&b, "Your %s ticket for %s on %s is attached.\n", n.TicketTypeName, n.EventName, n.EventStartsAt.UTC().Format(dateLayout))
	}
	if n.EventLocation != "" {
		fmt.Fprintf(&b, "\nLocation: %s\n", n.EventLocation)
	}

	return model.Mail{
		To:      n.Recipient,
		Subject: subject,
		Body:    b.String(),
		Attachments: []model.Attachment{{
			Filename:    fmt.Sprintf("ticket-%d.pdf", n.TicketID),
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	}
}
