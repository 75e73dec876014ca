//go:build unit

package commands_test

import (
	"context"
	"time"

	"rentmart/internal/domain/item"
	"rentmart/internal/domain/payment"
	"rentmart/internal/domain/rental"
	"rentmart/internal/domain/user"
	"rentmart/internal/infra"
	"rentmart/internal/usecase/commands"
	"rentmart/internal/usecase/queries"
	"rentmart/internal/usecase/shared"

	"github.com/google/uuid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// passthroughTxRunner runs the closure directly; command logic is what is
// under test, not transaction plumbing.
type passthroughTxRunner struct{}

func (passthroughTxRunner) Within(ctx context.Context, fn func(ctx context.Context, tx shared.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeRentalRepo struct {
	rentals map[uuid.UUID]*rental.Rental
	// status transitions applied through UpdateStatusIf, keyed by rental id
	updates map[uuid.UUID]rental.Status
}

func newFakeRentalRepo(rentals ...*rental.Rental) *fakeRentalRepo {
	repo := &fakeRentalRepo{
		rentals: make(map[uuid.UUID]*rental.Rental),
		updates: make(map[uuid.UUID]rental.Status),
	}
	for _, r := range rentals {
		repo.rentals[r.ID()] = r
	}
	return repo
}

func (f *fakeRentalRepo) Create(_ context.Context, _ shared.DBTX, r *rental.Rental) error {
	f.rentals[r.ID()] = r
	return nil
}

// FindByID hands out a detached copy, like a row scan would; mutating the
// returned entity must not change the stored state.
func (f *fakeRentalRepo) FindByID(_ context.Context, id uuid.UUID) (*rental.Rental, error) {
	r, ok := f.rentals[id]
	if !ok {
		return nil, infra.WrapRepoErr("rental not found", nil, infra.KindNotFound)
	}
	return rental.ReconstructRental(
		r.ID(), r.ItemID(), r.VendorID(), r.RenterID(),
		r.Period(), r.Quantity(), r.TotalPrice(), r.Status(),
		r.CreatedAt(), r.UpdatedAt(),
	), nil
}

func (f *fakeRentalRepo) UpdateStatusIf(_ context.Context, _ shared.DBTX, id uuid.UUID, from, to rental.Status) (bool, error) {
	r, ok := f.rentals[id]
	if !ok || r.Status() != from {
		return false, nil
	}
	f.updates[id] = to
	f.rentals[id] = rental.ReconstructRental(
		r.ID(), r.ItemID(), r.VendorID(), r.RenterID(),
		r.Period(), r.Quantity(), r.TotalPrice(), to,
		r.CreatedAt(), time.Now(),
	)
	return true, nil
}

type fakeTransactionRepo struct {
	transactions map[uuid.UUID]*payment.Transaction
	sessions     map[uuid.UUID]string // id -> authorization url
	settled      map[uuid.UUID]payment.Status
}

func newFakeTransactionRepo(txns ...*payment.Transaction) *fakeTransactionRepo {
	repo := &fakeTransactionRepo{
		transactions: make(map[uuid.UUID]*payment.Transaction),
		sessions:     make(map[uuid.UUID]string),
		settled:      make(map[uuid.UUID]payment.Status),
	}
	for _, t := range txns {
		repo.transactions[t.ID()] = t
	}
	return repo
}

func (f *fakeTransactionRepo) Create(_ context.Context, t *payment.Transaction) error {
	f.transactions[t.ID()] = t
	return nil
}

func (f *fakeTransactionRepo) FindByReference(_ context.Context, reference string) (*payment.Transaction, error) {
	for _, t := range f.transactions {
		if t.Reference() != nil && *t.Reference() == reference {
			return t, nil
		}
	}
	return nil, infra.WrapRepoErr("transaction not found", nil, infra.KindNotFound)
}

func (f *fakeTransactionRepo) FindPendingByRentalID(_ context.Context, rentalID uuid.UUID) (*payment.Transaction, error) {
	for _, t := range f.transactions {
		if t.RentalID() == rentalID && t.Status() == payment.StatusPending {
			return t, nil
		}
	}
	return nil, infra.WrapRepoErr("transaction not found", nil, infra.KindNotFound)
}

func (f *fakeTransactionRepo) AttachCheckoutSession(_ context.Context, id uuid.UUID, reference, authorizationURL string) error {
	f.sessions[id] = authorizationURL
	if t, ok := f.transactions[id]; ok {
		_ = t.AttachReference(reference)
	}
	return nil
}

func (f *fakeTransactionRepo) AuthorizationURL(_ context.Context, id uuid.UUID) (string, error) {
	url, ok := f.sessions[id]
	if !ok {
		return "", infra.WrapRepoErr("transaction has no checkout session", nil, infra.KindNotFound)
	}
	return url, nil
}

func (f *fakeTransactionRepo) SettleIf(_ context.Context, _ shared.DBTX, id uuid.UUID, to payment.Status) (bool, error) {
	t, ok := f.transactions[id]
	if !ok || t.Status() != payment.StatusPending {
		return false, nil
	}
	if err := t.Settle(to); err != nil {
		return false, nil
	}
	f.settled[id] = to
	return true, nil
}

type fakeItemRepo struct {
	snapshots map[uuid.UUID]*commands.ItemSnapshot
	reserved  map[uuid.UUID]int
	released  map[uuid.UUID]int
	patches   map[uuid.UUID]commands.ItemPatch
	// denyReserve simulates losing the availability race
	denyReserve bool
}

func newFakeItemRepo(snapshots ...*commands.ItemSnapshot) *fakeItemRepo {
	repo := &fakeItemRepo{
		snapshots: make(map[uuid.UUID]*commands.ItemSnapshot),
		reserved:  make(map[uuid.UUID]int),
		released:  make(map[uuid.UUID]int),
		patches:   make(map[uuid.UUID]commands.ItemPatch),
	}
	for _, s := range snapshots {
		repo.snapshots[s.ID] = s
	}
	return repo
}

func (f *fakeItemRepo) Create(_ context.Context, it *item.Item) error {
	f.snapshots[it.ID()] = &commands.ItemSnapshot{
		ID:                it.ID(),
		VendorID:          it.VendorID(),
		Title:             it.Title(),
		DailyRate:         it.DailyRate(),
		Quantity:          it.Quantity(),
		QuantityAvailable: it.QuantityAvailable(),
	}
	return nil
}

func (f *fakeItemRepo) Update(_ context.Context, id uuid.UUID, patch commands.ItemPatch) error {
	s, ok := f.snapshots[id]
	if !ok {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.DailyRateKobo != nil {
		rate, err := rental.NewMoney(*patch.DailyRateKobo)
		if err != nil {
			return err
		}
		s.DailyRate = rate
	}
	f.patches[id] = patch
	return nil
}

func (f *fakeItemRepo) FindSnapshotByID(_ context.Context, id uuid.UUID) (*commands.ItemSnapshot, error) {
	s, ok := f.snapshots[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return s, nil
}

func (f *fakeItemRepo) ReserveQuantity(_ context.Context, _ shared.DBTX, id uuid.UUID, quantity int) (bool, error) {
	if f.denyReserve {
		return false, nil
	}
	s, ok := f.snapshots[id]
	if !ok || s.QuantityAvailable < quantity {
		return false, nil
	}
	s.QuantityAvailable -= quantity
	f.reserved[id] += quantity
	return true, nil
}

func (f *fakeItemRepo) ReleaseQuantity(_ context.Context, _ shared.DBTX, id uuid.UUID, quantity int) error {
	f.released[id] += quantity
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	for _, u := range users {
		repo.users[u.ID()] = u
	}
	return repo
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

type fakeGateway struct {
	session      *commands.CheckoutSession
	sessionErr   error
	verification *commands.GatewayVerification
	verifyErr    error

	checkoutCalls []commands.CheckoutRequest
	verifyCalls   []string
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, req commands.CheckoutRequest) (*commands.CheckoutSession, error) {
	f.checkoutCalls = append(f.checkoutCalls, req)
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	if f.session != nil {
		return f.session, nil
	}
	return &commands.CheckoutSession{
		AuthorizationURL: "https://checkout.paystack.com/" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (f *fakeGateway) VerifyTransaction(_ context.Context, reference string) (*commands.GatewayVerification, error) {
	f.verifyCalls = append(f.verifyCalls, reference)
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verification, nil
}

func (f *fakeGateway) VerifyWebhookSignature(string, []byte) bool { return true }

// fakeRentalReadStore backs the read-after-write views the booking
// commands return.
type fakeRentalReadStore struct {
	rentals *fakeRentalRepo
}

func (f *fakeRentalReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.RentalView, error) {
	r, ok := f.rentals.rentals[id]
	if !ok {
		return nil, infra.WrapRepoErr("rental not found", nil, infra.KindNotFound)
	}
	return &queries.RentalView{
		ID:             r.ID(),
		ItemID:         r.ItemID(),
		VendorID:       r.VendorID(),
		RenterID:       r.RenterID(),
		StartDate:      r.Period().Start(),
		EndDate:        r.Period().End(),
		Quantity:       int32(r.Quantity()),
		TotalPriceKobo: r.TotalPrice().Kobo(),
		Status:         r.Status().String(),
	}, nil
}

func (f *fakeRentalReadStore) FindByRenterID(context.Context, uuid.UUID) ([]*queries.RentalListItem, error) {
	return nil, nil
}

func (f *fakeRentalReadStore) FindByVendorID(context.Context, uuid.UUID) ([]*queries.RentalListItem, error) {
	return nil, nil
}
