package rental

import (
	"errors"
	"time"

	"rentmart/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus        = errors.New("invalid rental status")
	ErrInvalidTransition    = errors.New("invalid rental status transition")
	ErrQuantityNotAvailable = errors.New("requested quantity exceeds available quantity")
)

// ItemSpec is the write-side item snapshot the booking flow reads.
type ItemSpec struct {
	ID                uuid.UUID
	VendorID          uuid.UUID
	DailyRate         Money
	QuantityAvailable int
}

type Rental struct {
	id         uuid.UUID
	itemID     uuid.UUID
	vendorID   uuid.UUID
	renterID   uuid.UUID
	period     DatePeriod
	quantity   int
	totalPrice Money
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

// Factory builds rentals with the price snapshotted at creation time.
// The snapshot never changes afterwards, even if the item is repriced.
type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clk clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{Clock: clk, PriceCalculator: priceCalculator}
}

func (f *Factory) CreateRental(item ItemSpec, renterID uuid.UUID, period DatePeriod, quantity int) (*Rental, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if quantity > item.QuantityAvailable {
		return nil, ErrQuantityNotAvailable
	}

	total, err := f.PriceCalculator.Calculate(item.DailyRate, quantity, period)
	if err != nil {
		return nil, err
	}

	now := f.Clock.Now()
	return &Rental{
		id:         uuid.New(),
		itemID:     item.ID,
		vendorID:   item.VendorID,
		renterID:   renterID,
		period:     period,
		quantity:   quantity,
		totalPrice: total,
		status:     StatusPending,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructRental(
	id, itemID, vendorID, renterID uuid.UUID,
	period DatePeriod,
	quantity int,
	totalPrice Money,
	status Status,
	createdAt, updatedAt time.Time,
) *Rental {
	return &Rental{
		id:         id,
		itemID:     itemID,
		vendorID:   vendorID,
		renterID:   renterID,
		period:     period,
		quantity:   quantity,
		totalPrice: totalPrice,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// TransitionTo validates the lifecycle rule before applying the change.
func (r *Rental) TransitionTo(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	return nil
}

func (r *Rental) IsPayable() bool {
	return r.status == StatusPending && !r.totalPrice.IsZero()
}

func (r *Rental) ID() uuid.UUID { return r.id }
func (r *Rental) ItemID() uuid.UUID { return r.itemID }
func (r *Rental) VendorID() uuid.UUID { return r.vendorID }
func (r *Rental) RenterID() uuid.UUID { return r.renterID }
func (r *Rental) Period() DatePeriod { return r.period }
func (r *Rental) Quantity() int { return r.quantity }
func (r *Rental) TotalPrice() Money { return r.totalPrice }
func (r *Rental) Status() Status { return r.status }
func (r *Rental) CreatedAt() time.Time { return r.createdAt }
func (r *Rental) UpdatedAt() time.Time { return r.updatedAt }
