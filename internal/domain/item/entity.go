package item

import (
	"errors"
	"strings"
	"time"

	"rentmart/internal/domain/rental"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle      = errors.New("item title cannot be empty")
	ErrTitleTooLong    = errors.New("item title too long")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
)

const MaxTitleLength = 120

type Item struct {
	id                uuid.UUID
	vendorID          uuid.UUID
	categoryID        *uuid.UUID
	title             string
	description       string
	dailyRate         rental.Money
	quantity          int
	quantityAvailable int
	images            []string
	createdAt         time.Time
	updatedAt         time.Time
}

func NewItem(
	vendorID uuid.UUID,
	categoryID *uuid.UUID,
	title, description string,
	dailyRate rental.Money,
	quantity int,
	images []string,
) (*Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return &Item{
		id:                uuid.New(),
		vendorID:          vendorID,
		categoryID:        categoryID,
		title:             title,
		description:       strings.TrimSpace(description),
		dailyRate:         dailyRate,
		quantity:          quantity,
		quantityAvailable: quantity,
		images:            images,
	}, nil
}

func (i *Item) ID() uuid.UUID { return i.id }
func (i *Item) VendorID() uuid.UUID { return i.vendorID }
func (i *Item) CategoryID() *uuid.UUID { return i.categoryID }
func (i *Item) Title() string { return i.title }
func (i *Item) Description() string { return i.description }
func (i *Item) DailyRate() rental.Money { return i.dailyRate }
func (i *Item) Quantity() int { return i.quantity }
func (i *Item) QuantityAvailable() int { return i.quantityAvailable }
func (i *Item) Images() []string { return i.images }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }
