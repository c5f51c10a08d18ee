// Package promo validates promo codes and tracks whether a discount is
// applied to the current session. Validation (is this code acceptable) and
// application (the flag feeding the pricing discount) are deliberately
// separate steps.
package promo

import (
	"os"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
)

// Status classifies the outcome of validating a submitted code.
type Status string

const (
	// StatusValid means the code is accepted and may be applied.
	StatusValid Status = "valid"
	// StatusInvalid means a non-empty code was rejected.
	StatusInvalid Status = "invalid"
	// StatusRequired means the submission was empty.
	StatusRequired Status = "required"
)

// Result is the outcome of a validation, with a display message for the
// presentation layer.
type Result struct {
	Status  Status
	Message string
}

// Validator checks whether a submitted promo code is acceptable.
type Validator interface {
	Validate(code string) Result
}

var _ Validator = (*CodeValidator)(nil)

// CodeValidator accepts one configured code, case-insensitive, plus any
// code present in an optional extended set loaded from a bloom filter
// sidecar (built by cmd/promo-ingest).
type CodeValidator struct {
	code     string
	extended *bloom.BloomFilter
}

// NewCodeValidator returns a validator for the configured code. The
// extended filter may be nil.
func NewCodeValidator(code string, extended *bloom.BloomFilter) *CodeValidator {
	return &CodeValidator{code: code, extended: extended}
}

// Validate classifies the submitted code. Empty input is "required", a
// recognised code is "valid", anything else is "invalid".
func (v *CodeValidator) Validate(code string) Result {
	code = strings.TrimSpace(code)
	if code == "" {
		return Result{Status: StatusRequired, Message: "Promo code is required."}
	}
	if strings.EqualFold(code, v.code) {
		return Result{Status: StatusValid, Message: "Promo code applied."}
	}
	if v.extended != nil && v.extended.TestString(strings.ToUpper(code)) {
		return Result{Status: StatusValid, Message: "Promo code applied."}
	}
	return Result{Status: StatusInvalid, Message: "Invalid promo code."}
}

// LoadFilter reads a bloom filter sidecar produced by promo-ingest.
func LoadFilter(path string) (*bloom.BloomFilter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open promo filter")
	}
	defer f.Close()

	var filter bloom.BloomFilter
	if _, err := filter.ReadFrom(f); err != nil {
		return nil, errors.Wrap(err, "read promo filter")
	}
	return &filter, nil
}
