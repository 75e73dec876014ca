//go:build unit

package commands_test

import (
	"context"
	"testing"

	"rentmart/internal/domain/payment"
	"rentmart/internal/domain/rental"
	"rentmart/internal/domain/user"
	"rentmart/internal/pkg/clock"
	"rentmart/internal/pkg/errs"
	"rentmart/internal/usecase/commands"
	"rentmart/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PaymentCommandsTestSuite struct {
	suite.Suite

	renter   *user.User
	rental   *rental.Rental
	rentals  *fakeRentalRepo
	txns     *fakeTransactionRepo
	items    *fakeItemRepo
	users    *fakeUserRepo
	gateway  *fakeGateway
	commands commands.PaymentCommands
}

func (s *PaymentCommandsTestSuite) SetupTest() {
	renter, err := user.NewUser("renter@example.com", "Ada", user.RoleRenter, "hash")
	s.Require().NoError(err)
	s.renter = renter

	factory := rental.NewFactory(clock.NewRealClock(), rental.NewStandardPriceCalculator())
	rate, err := rental.NewMoney(500000)
	s.Require().NoError(err)
	period, err := rental.NewDatePeriod(date(2025, 3, 10), date(2025, 3, 12))
	s.Require().NoError(err)

	s.rental, err = factory.CreateRental(rental.ItemSpec{
		ID:                uuid.New(),
		VendorID:          uuid.New(),
		DailyRate:         rate,
		QuantityAvailable: 5,
	}, renter.ID(), period, 2)
	s.Require().NoError(err)

	s.rentals = newFakeRentalRepo(s.rental)
	s.txns = newFakeTransactionRepo()
	s.items = newFakeItemRepo()
	s.users = newFakeUserRepo(renter)
	s.gateway = &fakeGateway{}
	s.commands = commands.NewPaymentCommands(
		s.rentals, s.txns, s.items, s.users, s.gateway, passthroughTxRunner{},
	)
}

func TestPaymentCommandsSuite(t *testing.T) {
	suite.Run(t, new(PaymentCommandsTestSuite))
}

func (s *PaymentCommandsTestSuite) actor() shared.Actor {
	return shared.Actor{ID: s.renter.ID(), Role: user.RoleRenter}
}

func (s *PaymentCommandsTestSuite) pendingTransaction(withReference bool) *payment.Transaction {
	txn, err := payment.NewTransaction(s.rental.ID(), s.rental.TotalPrice(), payment.GatewayPaystack)
	s.Require().NoError(err)
	if withReference {
		s.Require().NoError(txn.AttachReference(txn.ID().String()))
	}
	s.txns.transactions[txn.ID()] = txn
	return txn
}

func (s *PaymentCommandsTestSuite) TestInitializePayment() {
	s.Run("creates transaction and opens checkout session", func() {
		s.SetupTest()

		result, err := s.commands.InitializePayment(context.Background(), s.actor(), s.rental.ID())
		s.Require().NoError(err)

		s.Require().Len(s.gateway.checkoutCalls, 1)
		call := s.gateway.checkoutCalls[0]
		s.Equal("renter@example.com", call.Email)
		s.Equal(int64(3000000), call.Amount.Kobo())
		s.Equal(call.Reference, result.Reference)
		s.Contains(result.AuthorizationURL, result.Reference)
	})

	s.Run("replays existing checkout session without calling gateway", func() {
		s.SetupTest()
		txn := s.pendingTransaction(true)
		s.txns.sessions[txn.ID()] = "https://checkout.paystack.com/existing"

		result, err := s.commands.InitializePayment(context.Background(), s.actor(), s.rental.ID())
		s.Require().NoError(err)

		s.Empty(s.gateway.checkoutCalls)
		s.Equal("https://checkout.paystack.com/existing", result.AuthorizationURL)
		s.Equal(txn.ID().String(), result.Reference)
	})

	s.Run("reuses pending transaction without session instead of creating another", func() {
		s.SetupTest()
		txn := s.pendingTransaction(false)

		result, err := s.commands.InitializePayment(context.Background(), s.actor(), s.rental.ID())
		s.Require().NoError(err)

		s.Equal(txn.ID().String(), result.Reference)
		s.Len(s.txns.transactions, 1)
	})

	s.Run("rejects non-party actor", func() {
		s.SetupTest()

		stranger := shared.Actor{ID: uuid.New(), Role: user.RoleRenter}
		_, err := s.commands.InitializePayment(context.Background(), stranger, s.rental.ID())
		s.ErrorIs(err, errs.ErrNotRentalParty)
		s.Empty(s.gateway.checkoutCalls)
	})

	s.Run("rejects rental that is not awaiting payment", func() {
		s.SetupTest()
		s.Require().NoError(s.rental.TransitionTo(rental.StatusAccepted))

		_, err := s.commands.InitializePayment(context.Background(), s.actor(), s.rental.ID())
		s.ErrorIs(err, errs.ErrRentalNotPayable)
	})

	s.Run("unknown rental", func() {
		s.SetupTest()

		_, err := s.commands.InitializePayment(context.Background(), s.actor(), uuid.New())
		s.ErrorIs(err, errs.ErrRentalNotFound)
	})

	s.Run("gateway failure leaves transaction pending and retryable", func() {
		s.SetupTest()
		s.gateway.sessionErr = errs.Mark(errs.New("connect timeout"), errs.ErrGatewayUnavailable)

		_, err := s.commands.InitializePayment(context.Background(), s.actor(), s.rental.ID())
		s.ErrorIs(err, errs.ErrGatewayUnavailable)

		// The created transaction survives without a checkout session and
		// is picked up by the next attempt.
		txn, findErr := s.txns.FindPendingByRentalID(context.Background(), s.rental.ID())
		s.Require().NoError(findErr)
		s.False(txn.HasCheckoutSession())
	})
}

func (s *PaymentCommandsTestSuite) TestSettleTransaction() {
	s.Run("verified success settles transaction and accepts rental", func() {
		s.SetupTest()
		txn := s.pendingTransaction(true)
		s.gateway.verification = &commands.GatewayVerification{Success: true, AmountKobo: 3000000, RawStatus: "success"}

		outcome, err := s.commands.SettleTransaction(context.Background(), txn.ID().String())
		s.Require().NoError(err)

		s.Equal(commands.SettlementAccepted, outcome)
		s.Equal(payment.StatusSuccess, s.txns.settled[txn.ID()])
		s.Equal(rental.StatusAccepted, s.rentals.updates[s.rental.ID()])
	})

	s.Run("second delivery is a conflict no-op", func() {
		s.SetupTest()
		txn := s.pendingTransaction(true)
		s.gateway.verification = &commands.GatewayVerification{Success: true, RawStatus: "success"}

		first, err := s.commands.SettleTransaction(context.Background(), txn.ID().String())
		s.Require().NoError(err)
		s.Equal(commands.SettlementAccepted, first)

		second, err := s.commands.SettleTransaction(context.Background(), txn.ID().String())
		s.Require().NoError(err)
		s.Equal(commands.SettlementConflict, second)
	})

	s.Run("failed verification never promotes state", func() {
		s.SetupTest()
		txn := s.pendingTransaction(true)
		s.gateway.verification = &commands.GatewayVerification{Success: false, RawStatus: "failed"}

		outcome, err := s.commands.SettleTransaction(context.Background(), txn.ID().String())
		s.Require().NoError(err)

		s.Equal(commands.SettlementRejected, outcome)
		s.Empty(s.txns.settled)
		s.Empty(s.rentals.updates)
		s.Equal(payment.StatusPending, txn.Status())
	})

	s.Run("unknown reference is unmatched", func() {
		s.SetupTest()
		s.gateway.verification = &commands.GatewayVerification{Success: true, RawStatus: "success"}

		outcome, err := s.commands.SettleTransaction(context.Background(), uuid.New().String())
		s.Require().NoError(err)
		s.Equal(commands.SettlementUnmatched, outcome)
	})

	s.Run("gateway unavailable blocks settlement entirely", func() {
		s.SetupTest()
		txn := s.pendingTransaction(true)
		s.gateway.verifyErr = errs.Mark(errs.New("connect timeout"), errs.ErrGatewayUnavailable)

		_, err := s.commands.SettleTransaction(context.Background(), txn.ID().String())
		s.ErrorIs(err, errs.ErrGatewayUnavailable)
		s.Empty(s.txns.settled)
		s.Empty(s.rentals.updates)
	})

	s.Run("verification is always checked before any lookup", func() {
		s.SetupTest()
		txn := s.pendingTransaction(true)
		s.gateway.verification = &commands.GatewayVerification{Success: true, RawStatus: "success"}

		_, err := s.commands.SettleTransaction(context.Background(), txn.ID().String())
		s.Require().NoError(err)
		s.Equal([]string{txn.ID().String()}, s.gateway.verifyCalls)
	})
}

func TestSettlementOutcomeValues(t *testing.T) {
	require.Equal(t, "accepted", string(commands.SettlementAccepted))
	assert.Equal(t, "rejected", string(commands.SettlementRejected))
	assert.Equal(t, "conflict", string(commands.SettlementConflict))
	assert.Equal(t, "unmatched", string(commands.SettlementUnmatched))
}
