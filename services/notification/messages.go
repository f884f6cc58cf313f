package notification

import (
	"fmt"

	"stayfinder/models"
	"stayfinder/utils"
)

// draft is a notification before it gets an id and timestamp.
type draft struct {
	recipient string
	title     string
	message   string
}

func listingTitle(l *models.Listing) string {
	if l == nil || l.Title == "" {
		return "your listing"
	}
	return l.Title
}

// draftsFor returns the notifications an event produces. A nil result means the
// kind has no notifications.
func draftsFor(kind models.BookingStatus, b *models.Booking, l *models.Listing, actorID string) []draft {
	title := listingTitle(l)
	checkIn, checkOut := utils.DisplayDate(b.CheckIn), utils.DisplayDate(b.CheckOut)

	switch kind {
	case models.StatusPending:
		return []draft{{
			recipient: b.Host,
			title:     "New Booking Request",
			message:   fmt.Sprintf("You have a new booking request for %s from %s to %s", title, checkIn, checkOut),
		}}
	case models.StatusConfirmed:
		return []draft{{
			recipient: b.Guest,
			title:     "Booking Confirmed",
			message:   fmt.Sprintf("Your booking for %s has been confirmed for %s to %s", title, checkIn, checkOut),
		}}
	case models.StatusRejected:
		return []draft{{
			recipient: b.Guest,
			title:     "Booking Declined",
			message:   fmt.Sprintf("Your booking request for %s has been declined", title),
		}}
	case models.StatusCompleted:
		return []draft{
			{recipient: b.Guest, title: "Stay Completed", message: fmt.Sprintf("Your stay at %s has been completed", title)},
			{recipient: b.Host, title: "Stay Completed", message: fmt.Sprintf("The stay at %s has been completed", title)},
		}
	case models.StatusCancelled:
		return []draft{{
			recipient: b.Counterparty(actorID),
			title:     "Booking Cancelled",
			message:   fmt.Sprintf("A booking for %s has been cancelled", title),
		}}
	}
	return nil
}
