//go:build unit

package payment_test

import (
	"testing"

	"rentmart/internal/domain/payment"
	"rentmart/internal/domain/rental"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAmount(t *testing.T) rental.Money {
	t.Helper()
	m, err := rental.NewMoney(3000000)
	require.NoError(t, err)
	return m
}

func TestNewTransaction(t *testing.T) {
	t.Run("starts pending without a checkout session", func(t *testing.T) {
		txn, err := payment.NewTransaction(uuid.New(), testAmount(t), payment.GatewayPaystack)
		require.NoError(t, err)

		assert.Equal(t, payment.StatusPending, txn.Status())
		assert.False(t, txn.HasCheckoutSession())
		assert.Nil(t, txn.Reference())
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		zero, err := rental.NewMoney(0)
		require.NoError(t, err)

		_, err = payment.NewTransaction(uuid.New(), zero, payment.GatewayPaystack)
		assert.ErrorIs(t, err, payment.ErrNonPositiveAmount)
	})

	t.Run("rejects unknown gateway", func(t *testing.T) {
		_, err := payment.NewTransaction(uuid.New(), testAmount(t), "stripe")
		assert.ErrorIs(t, err, payment.ErrUnknownGateway)
	})
}

func TestSettle(t *testing.T) {
	newPending := func(t *testing.T) *payment.Transaction {
		txn, err := payment.NewTransaction(uuid.New(), testAmount(t), payment.GatewayPaystack)
		require.NoError(t, err)
		return txn
	}

	t.Run("pending settles exactly once", func(t *testing.T) {
		txn := newPending(t)
		require.NoError(t, txn.Settle(payment.StatusSuccess))
		assert.Equal(t, payment.StatusSuccess, txn.Status())

		err := txn.Settle(payment.StatusSuccess)
		assert.ErrorIs(t, err, payment.ErrAlreadySettled)
	})

	t.Run("failed is terminal too", func(t *testing.T) {
		txn := newPending(t)
		require.NoError(t, txn.Settle(payment.StatusFailed))

		err := txn.Settle(payment.StatusSuccess)
		assert.ErrorIs(t, err, payment.ErrAlreadySettled)
		assert.Equal(t, payment.StatusFailed, txn.Status())
	})

	t.Run("cannot settle to pending", func(t *testing.T) {
		txn := newPending(t)
		err := txn.Settle(payment.StatusPending)
		assert.ErrorIs(t, err, payment.ErrInvalidStatus)
	})
}

func TestAttachReference(t *testing.T) {
	txn, err := payment.NewTransaction(uuid.New(), testAmount(t), payment.GatewayPaystack)
	require.NoError(t, err)

	require.NoError(t, txn.AttachReference(txn.ID().String()))
	assert.True(t, txn.HasCheckoutSession())
	require.NotNil(t, txn.Reference())
	assert.Equal(t, txn.ID().String(), *txn.Reference())

	require.NoError(t, txn.Settle(payment.StatusSuccess))
	err = txn.AttachReference("other")
	assert.ErrorIs(t, err, payment.ErrAlreadySettled)
}
