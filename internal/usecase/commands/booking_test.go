//go:build unit

package commands_test

import (
	"context"
	"testing"

	"rentmart/internal/domain/rental"
	"rentmart/internal/domain/user"
	"rentmart/internal/pkg/clock"
	"rentmart/internal/pkg/errs"
	"rentmart/internal/usecase/commands"
	"rentmart/internal/usecase/queries"
	"rentmart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingCommandsTestSuite struct {
	suite.Suite

	renterID uuid.UUID
	vendorID uuid.UUID
	item     *commands.ItemSnapshot
	rentals  *fakeRentalRepo
	items    *fakeItemRepo
	commands commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.renterID = uuid.New()
	s.vendorID = uuid.New()

	rate, err := rental.NewMoney(500000)
	s.Require().NoError(err)

	s.item = &commands.ItemSnapshot{
		ID:                uuid.New(),
		VendorID:          s.vendorID,
		Title:             "Canon EOS R5",
		DailyRate:         rate,
		Quantity:          5,
		QuantityAvailable: 5,
	}

	s.rentals = newFakeRentalRepo()
	s.items = newFakeItemRepo(s.item)

	rentalQueries := queries.NewRentalQueries(&fakeRentalReadStore{rentals: s.rentals})
	s.commands = commands.NewBookingCommands(
		s.rentals,
		s.items,
		rental.NewFactory(clock.NewRealClock(), rental.NewStandardPriceCalculator()),
		rentalQueries,
		passthroughTxRunner{},
	)
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) renter() shared.Actor {
	return shared.Actor{ID: s.renterID, Role: user.RoleRenter}
}

func (s *BookingCommandsTestSuite) validInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ItemID:    s.item.ID,
		StartDate: date(2025, 3, 10),
		EndDate:   date(2025, 3, 12),
		Quantity:  2,
	}
}

func (s *BookingCommandsTestSuite) TestCreateBooking() {
	s.Run("books item with snapshotted total price", func() {
		s.SetupTest()

		view, err := s.commands.CreateBooking(context.Background(), s.renter(), s.validInput())
		s.Require().NoError(err)

		// 5000 naira/day x 2 units x 3 days
		s.Equal(int64(3000000), view.TotalPriceKobo)
		s.Equal("pending", view.Status)
		s.Equal(s.renterID, view.RenterID)
		s.Equal(s.vendorID, view.VendorID)
		s.Equal(2, s.items.reserved[s.item.ID])
		s.Equal(3, s.items.snapshots[s.item.ID].QuantityAvailable)
	})

	s.Run("unknown item", func() {
		s.SetupTest()
		input := s.validInput()
		input.ItemID = uuid.New()

		_, err := s.commands.CreateBooking(context.Background(), s.renter(), input)
		s.ErrorIs(err, errs.ErrItemNotFound)
	})

	s.Run("quantity above availability", func() {
		s.SetupTest()
		input := s.validInput()
		input.Quantity = 6

		_, err := s.commands.CreateBooking(context.Background(), s.renter(), input)
		s.ErrorIs(err, errs.ErrItemUnavailable)
		s.Empty(s.rentals.rentals)
	})

	s.Run("losing the availability race", func() {
		s.SetupTest()
		s.items.denyReserve = true

		_, err := s.commands.CreateBooking(context.Background(), s.renter(), s.validInput())
		s.ErrorIs(err, errs.ErrItemUnavailable)
		s.Empty(s.rentals.rentals)
	})

	s.Run("end before start", func() {
		s.SetupTest()
		input := s.validInput()
		input.StartDate = date(2025, 3, 12)
		input.EndDate = date(2025, 3, 10)

		_, err := s.commands.CreateBooking(context.Background(), s.renter(), input)
		s.ErrorIs(err, errs.ErrDomainValidation)
	})
}

func (s *BookingCommandsTestSuite) TestUpdateRentalStatus() {
	book := func() *queries.RentalView {
		view, err := s.commands.CreateBooking(context.Background(), s.renter(), s.validInput())
		s.Require().NoError(err)
		return view
	}

	s.Run("vendor accepts a pending rental", func() {
		s.SetupTest()
		booked := book()

		vendor := shared.Actor{ID: s.vendorID, Role: user.RoleVendor}
		view, err := s.commands.UpdateRentalStatus(context.Background(), vendor, booked.ID, rental.StatusAccepted)
		s.Require().NoError(err)

		s.Equal("accepted", view.Status)
		s.Zero(s.items.released[s.item.ID])
	})

	s.Run("renter cancels own rental and availability returns", func() {
		s.SetupTest()
		booked := book()

		view, err := s.commands.UpdateRentalStatus(context.Background(), s.renter(), booked.ID, rental.StatusCancelled)
		s.Require().NoError(err)

		s.Equal("cancelled", view.Status)
		s.Equal(2, s.items.released[s.item.ID])
	})

	s.Run("renter cannot accept", func() {
		s.SetupTest()
		booked := book()

		_, err := s.commands.UpdateRentalStatus(context.Background(), s.renter(), booked.ID, rental.StatusAccepted)
		s.ErrorIs(err, errs.ErrForbidden)
	})

	s.Run("stranger cannot cancel", func() {
		s.SetupTest()
		booked := book()

		stranger := shared.Actor{ID: uuid.New(), Role: user.RoleRenter}
		_, err := s.commands.UpdateRentalStatus(context.Background(), stranger, booked.ID, rental.StatusCancelled)
		s.ErrorIs(err, errs.ErrForbidden)
	})

	s.Run("lifecycle violations are rejected", func() {
		s.SetupTest()
		booked := book()

		vendor := shared.Actor{ID: s.vendorID, Role: user.RoleVendor}
		_, err := s.commands.UpdateRentalStatus(context.Background(), vendor, booked.ID, rental.StatusCompleted)
		s.ErrorIs(err, errs.ErrInvalidTransition)
	})

	s.Run("admin can drive any transition", func() {
		s.SetupTest()
		booked := book()

		admin := shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}
		view, err := s.commands.UpdateRentalStatus(context.Background(), admin, booked.ID, rental.StatusAccepted)
		s.Require().NoError(err)
		s.Equal("accepted", view.Status)
	})
}
