package booking

import (
	"slices"

	"stayfinder/models"
	"stayfinder/utils"
)

// transitions lists the statuses a host may move a booking to. Terminal
// statuses have no entry.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusRejected},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
}

func canTransition(from, to models.BookingStatus) bool {
	return slices.Contains(transitions[from], to)
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s models.BookingStatus) bool {
	return len(transitions[s]) == 0
}

type operation int

const (
	opView operation = iota
	opTransition
	opCancel
	opDelete
)

var deniedMessages = map[operation]string{
	opView:       "Not authorized to view this booking",
	opTransition: "Not authorized to update this booking",
	opCancel:     "Not authorized to cancel this booking",
	opDelete:     "Not authorized to delete this booking",
}

// authorize is the single capability check for booking operations. Status
// transitions belong to the host; every other operation is open to both parties.
func authorize(op operation, b *models.Booking, requesterID string) error {
	allowed := false
	switch op {
	case opTransition:
		allowed = requesterID == b.Host
	case opView, opCancel, opDelete:
		allowed = requesterID == b.Guest || requesterID == b.Host
	}
	if !allowed {
		return utils.Forbidden(deniedMessages[op])
	}
	return nil
}
