package booking

import (
	"testing"

	"stayfinder/models"
	"stayfinder/utils"
)

func TestTransitionTable(t *testing.T) {
	allowed := map[[2]models.BookingStatus]bool{
		{models.StatusPending, models.StatusConfirmed}:   true,
		{models.StatusPending, models.StatusRejected}:    true,
		{models.StatusConfirmed, models.StatusCompleted}: true,
		{models.StatusConfirmed, models.StatusCancelled}: true,
	}

	for _, from := range models.BookingStatuses {
		for _, to := range models.BookingStatuses {
			want := allowed[[2]models.BookingStatus{from, to}]
			if got := canTransition(from, to); got != want {
				t.Errorf("canTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	terminal := map[models.BookingStatus]bool{
		models.StatusRejected:  true,
		models.StatusCompleted: true,
		models.StatusCancelled: true,
	}
	for _, s := range models.BookingStatuses {
		if IsTerminal(s) != terminal[s] {
			t.Errorf("IsTerminal(%s) = %v", s, IsTerminal(s))
		}
	}
}

func TestAuthorize(t *testing.T) {
	b := &models.Booking{Guest: guestID, Host: hostID}

	cases := []struct {
		op        operation
		requester string
		allowed   bool
	}{
		{opTransition, hostID, true},
		{opTransition, guestID, false},
		{opTransition, otherID, false},
		{opCancel, hostID, true},
		{opCancel, guestID, true},
		{opCancel, otherID, false},
		{opDelete, guestID, true},
		{opDelete, otherID, false},
		{opView, hostID, true},
		{opView, otherID, false},
	}

	for _, tc := range cases {
		err := authorize(tc.op, b, tc.requester)
		if tc.allowed && err != nil {
			t.Errorf("op %d by %s: unexpected error %v", tc.op, tc.requester, err)
		}
		if !tc.allowed && utils.KindOf(err) != utils.KindForbidden {
			t.Errorf("op %d by %s: expected Forbidden, got %v", tc.op, tc.requester, err)
		}
	}
}
