package product

import (
	"fmt"
	"strings"

	"printfarm/internal/pkg/errs"
)

// DeductReason explains a manual write-off.
type DeductReason string

const (
	ReasonFire      DeductReason = "fire"
	ReasonLoss      DeductReason = "loss"
	ReasonDefective DeductReason = "defective"
	ReasonOther     DeductReason = "other"
)

func ParseDeductReason(s string) (DeductReason, error) {
	r := DeductReason(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r DeductReason) Validate() error {
	switch r {
	case ReasonFire, ReasonLoss, ReasonDefective, ReasonOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"deduct reason is invalid",
			fmt.Errorf("%q is not one of fire, loss, defective, other", string(r)),
		)
	}
}

func (r DeductReason) String() string {
	return string(r)
}
