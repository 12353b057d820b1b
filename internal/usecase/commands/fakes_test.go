//go:build unit

package commands_test

import (
	"context"
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/club"
	"courtbook/internal/domain/tariff"
	"courtbook/internal/infra"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the persistence layer. Within
// snapshots the store before running the transaction body and restores it on
// error, mirroring rollback.
type fakeStore struct {
	courts   map[uuid.UUID]*club.CourtSnapshot
	clubCfg  *club.Config
	rules    []tariff.Rule
	bookings []*booking.Booking
	shares   []*booking.PaymentShare

	createBookingErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courts: make(map[uuid.UUID]*club.CourtSnapshot),
	}
}

func (s *fakeStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	prevBookings := append([]*booking.Booking(nil), s.bookings...)
	prevShares := append([]*booking.PaymentShare(nil), s.shares...)

	if err := fn(ctx, sharedTx{store: s}); err != nil {
		s.bookings = prevBookings
		s.shares = prevShares
		return err
	}
	return nil
}

func (s *fakeStore) CommandReads() shared.CommandReads {
	return sharedReads{store: s}
}

type sharedTx struct {
	store *fakeStore
}

func (t sharedTx) Bookings() shared.BookingRepository { return sharedBookingRepo{store: t.store} }
func (t sharedTx) Shares() shared.ShareRepository     { return sharedShareRepo{store: t.store} }
func (t sharedTx) Reads() shared.CommandReads         { return sharedReads{store: t.store} }

type sharedReads struct {
	store *fakeStore
}

func (r sharedReads) CourtByID(_ context.Context, id uuid.UUID) (*club.CourtSnapshot, error) {
	court, ok := r.store.courts[id]
	if !ok {
		return nil, infra.WrapRepoErr("court not found", nil, infra.KindNotFound)
	}
	return court, nil
}

func (r sharedReads) ClubConfigByID(_ context.Context, _ uuid.UUID) (*club.Config, error) {
	if r.store.clubCfg == nil {
		return nil, infra.WrapRepoErr("club not found", nil, infra.KindNotFound)
	}
	return r.store.clubCfg, nil
}

func (r sharedReads) TariffRulesForCourt(_ context.Context, _, _ uuid.UUID) ([]tariff.Rule, error) {
	return r.store.rules, nil
}

type sharedBookingRepo struct {
	store *fakeStore
}

func (r sharedBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if r.store.createBookingErr != nil {
		return r.store.createBookingErr
	}
	r.store.bookings = append(r.store.bookings, b)
	return nil
}

func (r sharedBookingRepo) FindBlockingOverlap(_ context.Context, courtID uuid.UUID, start, end time.Time) (*uuid.UUID, error) {
	for _, b := range r.store.bookings {
		if b.CourtID() != courtID || !b.Status().Blocks() {
			continue
		}
		if b.Slot().Start().Before(end) && start.Before(b.Slot().End()) {
			id := b.ID()
			return &id, nil
		}
	}
	return nil, nil
}

func (r sharedBookingRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	for _, b := range r.store.bookings {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (r sharedBookingRepo) UpdateStatus(_ context.Context, _ *booking.Booking) error {
	return nil
}

func (r sharedBookingRepo) ExpireStale(_ context.Context, now time.Time) (int64, error) {
	var swept int64
	for i, b := range r.store.bookings {
		if !b.HoldExpired(now) {
			continue
		}
		r.store.bookings[i] = booking.ReconstructBooking(
			b.ID(), b.CourtID(), b.UserID(), b.GuestName(), b.Slot(), b.SeriesID(),
			b.Price(), booking.StatusExpired, b.ExpiresAt(), b.CreatedAt(), now,
		)
		swept++
	}
	return swept, nil
}

type sharedShareRepo struct {
	store *fakeStore
}

func (r sharedShareRepo) Create(_ context.Context, s *booking.PaymentShare) error {
	r.store.shares = append(r.store.shares, s)
	return nil
}

func (r sharedShareRepo) ListByBookingForUpdate(_ context.Context, bookingID uuid.UUID) ([]*booking.PaymentShare, error) {
	var out []*booking.PaymentShare
	for _, s := range r.store.shares {
		if s.BookingID() == bookingID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r sharedShareRepo) Update(_ context.Context, _ *booking.PaymentShare) error {
	return nil
}
