package order

import (
	"errors"
	"fmt"
	"strings"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrLineItemIsNotConstructed = errors.New("line item must be created via NewLineItem")

// LineItem is an ordered product. Code and name are snapshotted at order
// time so historic orders stay readable after catalog edits.
type LineItem struct {
	productID   kernel.UUID
	productCode string
	productName string
	quantity    int
	unitPrice   decimal.Decimal
	guard       guard.ConstructorGuard
}

func NewLineItem(
	productID kernel.UUID,
	productCode string,
	productName string,
	quantity int,
	unitPrice decimal.Decimal,
) (LineItem, error) {
	var err error
	if e := productID.Validate(); e != nil {
		err = errors.Join(err, e)
	}
	if quantity <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if unitPrice.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"unit price is invalid", fmt.Errorf("%s is negative", unitPrice)))
	}
	if err != nil {
		return LineItem{}, err
	}

	return LineItem{
		productID:   productID,
		productCode: strings.TrimSpace(productCode),
		productName: strings.TrimSpace(productName),
		quantity:    quantity,
		unitPrice:   unitPrice,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (l LineItem) ProductID() kernel.UUID {
	return l.productID
}

func (l LineItem) ProductCode() string {
	return l.productCode
}

func (l LineItem) ProductName() string {
	return l.productName
}

func (l LineItem) Quantity() int {
	return l.quantity
}

func (l LineItem) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

func (l LineItem) Subtotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

func (l LineItem) Validate() error {
	return l.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductionLine is the quantity a production run adds for one product.
type ProductionLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// BobbinSelection records which spool feeds one filament requirement of a product.
type BobbinSelection struct {
	ProductID      kernel.UUID
	RequirementKey string
	BobbinID       kernel.UUID
}
