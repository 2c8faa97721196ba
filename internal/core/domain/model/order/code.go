package order

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"
)

var codePattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{6}$`)

// NewCode returns a human-readable order code of the form ORD-YYYYMMDD-XXXXXX.
// The suffix is taken from a random UUID.
func NewCode(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(kernel.NewUUID().String(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", at.UTC().Format("20060102"), suffix)
}

func validateCode(code string) error {
	if !codePattern.MatchString(code) {
		return errs.NewValueIsInvalidErrorWithCause("order code is invalid", fmt.Errorf("%q does not match ORD-YYYYMMDD-XXXXXX", code))
	}
	return nil
}
