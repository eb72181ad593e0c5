package models

import "testing"

func TestCanTransitionReservation(t *testing.T) {
	allowed := []struct{ from, to string }{
		{ReservationPending, ReservationApproved},
		{ReservationPending, ReservationCancelled},
		{ReservationPending, ReservationRejected},
		{ReservationPending, ReservationExpired},
		{ReservationApproved, ReservationActive},
		{ReservationApproved, ReservationCancelled},
		{ReservationActive, ReservationCompleted},
		{ReservationActive, ReservationCancelled},
	}
	for _, c := range allowed {
		if !CanTransitionReservation(c.from, c.to) {
			t.Errorf("expected %s -> %s to be allowed", c.from, c.to)
		}
	}

	denied := []struct{ from, to string }{
		{ReservationPending, ReservationActive},
		{ReservationPending, ReservationCompleted},
		{ReservationApproved, ReservationCompleted},
		{ReservationApproved, ReservationRejected},
		{ReservationCompleted, ReservationCancelled},
		{ReservationCancelled, ReservationApproved},
		{ReservationRejected, ReservationPending},
		{ReservationExpired, ReservationApproved},
		{"bogus", ReservationApproved},
	}
	for _, c := range denied {
		if CanTransitionReservation(c.from, c.to) {
			t.Errorf("expected %s -> %s to be denied", c.from, c.to)
		}
	}
}

func TestReservationBlocksDates(t *testing.T) {
	blocking := []string{ReservationPending, ReservationApproved, ReservationActive}
	for _, s := range blocking {
		if !ReservationBlocksDates(s) {
			t.Errorf("expected %s to block dates", s)
		}
	}
	open := []string{ReservationCompleted, ReservationCancelled, ReservationRejected, ReservationExpired}
	for _, s := range open {
		if ReservationBlocksDates(s) {
			t.Errorf("expected %s not to block dates", s)
		}
	}
}
