package rma

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ErrItemIsNotConstructed indicates a zero-value Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of a return's item manifest: what is coming back and why.
// Items are fixed at request time; inspection records its findings on the
// Return, not by editing the manifest.
type Item struct {
	sku         string
	description string
	quantity    int
	reason      string

	isConstructed bool
}

// NewItem creates a manifest line. SKU and a positive quantity are required;
// description and reason are free text.
func NewItem(sku, description string, quantity int, reason string) (Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return Item{}, errs.NewValueIsRequiredError("sku")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	return Item{
		sku:         sku,
		description: strings.TrimSpace(description),
		quantity:    quantity,
		reason:      strings.TrimSpace(reason),

		isConstructed: true,
	}, nil
}

// Validate returns ErrItemIsNotConstructed for the zero value.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// SKU returns the stock keeping unit of the returned article.
func (i Item) SKU() string { return i.sku }

// Description returns the article description.
func (i Item) Description() string { return i.description }

// Quantity returns the number of units coming back.
func (i Item) Quantity() int { return i.quantity }

// Reason returns the customer's stated return reason.
func (i Item) Reason() string { return i.reason }

// String implements fmt.Stringer for log output.
func (i Item) String() string {
	return fmt.Sprintf("%dx %s", i.quantity, i.sku)
}
