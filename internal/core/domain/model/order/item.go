package order

import (
	"errors"
	"fmt"

	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single order line, exclusively owned by its Order. An item may
// carry a serial referencing one serialized stock unit of its product; such
// items drive reservation and write-off when the order changes status.
//
// The line amount is computed, never stored independently:
//
//	amount = price * quantity - discount
type Item struct { //nolint:recvcheck //using for validation
	id          int64
	productID   int64
	quantity    int
	price       decimal.Decimal
	discount    decimal.Decimal
	serial      *string
	isAccessory bool

	guard guard.ConstructorGuard
}

// NewItem creates a validated order line.
// Quantity must be positive; price and discount must be non-negative; the
// discount must not exceed the undiscounted line price. A serialized item
// must have quantity 1 because a serial identifies exactly one physical unit.
func NewItem(productID int64, quantity int, price, discount decimal.Decimal, serial *string, isAccessory bool) (Item, error) {
	item := Item{
		productID:   productID,
		isAccessory: isAccessory,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setQuantity(quantity, serial),
		item.setPrice(price),
		item.setDiscount(discount, price, quantity),
		item.setSerial(serial),
	); err != nil {
		return Item{}, err
	}

	if productID <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("productId",
			fmt.Errorf("%d is not a valid product id", productID))
	}

	return item, nil
}

// RestoreItem reconstructs an item from persistence without re-running
// creation-time checks beyond construction guarding.
func RestoreItem(id, productID int64, quantity int, price, discount decimal.Decimal, serial *string, isAccessory bool) Item {
	return Item{
		id:          id,
		productID:   productID,
		quantity:    quantity,
		price:       price,
		discount:    discount,
		serial:      serial,
		isAccessory: isAccessory,
		guard:       guard.NewConstructorGuard(),
	}
}

// Validate ensures the Item was created through a constructor.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the store-assigned line identifier (zero until persisted).
func (i Item) ID() int64 {
	return i.id
}

// SetID attaches the store-assigned identifier after the first insert.
func (i *Item) SetID(id int64) {
	i.id = id
}

// ProductID returns the catalog product this line sells.
func (i Item) ProductID() int64 {
	return i.productID
}

// Quantity returns the number of units sold on this line.
func (i Item) Quantity() int {
	return i.quantity
}

// Price returns the unit price.
func (i Item) Price() decimal.Decimal {
	return i.price
}

// Discount returns the absolute discount applied to the whole line.
func (i Item) Discount() decimal.Decimal {
	return i.discount
}

// Serial returns the serial of the referenced stock unit, or nil for
// non-serialized lines.
func (i Item) Serial() *string {
	return i.serial
}

// IsSerialized reports whether the line references a serialized stock unit.
func (i Item) IsSerialized() bool {
	return i.serial != nil && *i.serial != ""
}

// IsAccessory reports whether the line is an accessory add-on.
func (i Item) IsAccessory() bool {
	return i.isAccessory
}

// Amount returns the computed line amount: price * quantity - discount.
func (i Item) Amount() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity))).Sub(i.discount)
}

func (i *Item) setQuantity(quantity int, serial *string) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if serial != nil && *serial != "" && quantity != 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("serialized item must have quantity 1, got %d", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is negative", price))
	}
	i.price = price
	return nil
}

func (i *Item) setDiscount(discount, price decimal.Decimal, quantity int) error {
	if discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discount",
			fmt.Errorf("%s is negative", discount))
	}
	if quantity > 0 && discount.GreaterThan(price.Mul(decimal.NewFromInt(int64(quantity)))) {
		return errs.NewValueIsInvalidErrorWithCause("discount",
			fmt.Errorf("%s exceeds the line price", discount))
	}
	i.discount = discount
	return nil
}

func (i *Item) setSerial(serial *string) error {
	if serial != nil && *serial == "" {
		return errs.NewValueIsRequiredError("serial must not be empty when provided")
	}
	i.serial = serial
	return nil
}
