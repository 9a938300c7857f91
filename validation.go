package finlit

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUnbalanced     = errors.New("transaction does not balance")
	ErrUnknownAccount = errors.New("account outside the known roots")
	ErrInvalidPrice   = errors.New("invalid price")
	ErrEmptyCommodity = errors.New("missing commodity")
)

// balanceTolerance is the largest residual still considered balanced.
var balanceTolerance = decimal.New(5, -3)

// validateEntry returns the problems of a decoded entry, joined, or nil.
func validateEntry(e Entry, types AccountTypes) error {
	switch v := e.(type) {
	case Transaction:
		return validateTransaction(v, types)
	case Price:
		return validatePrice(v)
	case Commodity:
		if v.Currency == "" {
			return ErrEmptyCommodity
		}
	}
	return nil
}

func validateTransaction(tx Transaction, types AccountTypes) error {
	var errs []error
	for _, p := range tx.Postings {
		if types.Classify(p.Account) == UnknownAccount {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownAccount, p.Account))
		}
		if p.Units.cur == "" {
			errs = append(errs, fmt.Errorf("%w on posting to %q", ErrEmptyCommodity, p.Account))
		}
	}
	for cur, residual := range tx.residuals(balanceTolerance) {
		errs = append(errs, fmt.Errorf("%w on %s: residual %s %s", ErrUnbalanced, tx.Date, residual, cur))
	}
	return errors.Join(errs...)
}

func validatePrice(p Price) error {
	switch {
	case p.Currency == "" || p.Rate.cur == "":
		return fmt.Errorf("%w: %w", ErrInvalidPrice, ErrEmptyCommodity)
	case p.Currency == p.Rate.cur:
		return fmt.Errorf("%w: %s quoted in itself", ErrInvalidPrice, p.Currency)
	case !p.Rate.value.IsPositive():
		return fmt.Errorf("%w: %s rate %s is not positive", ErrInvalidPrice, p.Currency, p.Rate.value)
	}
	return nil
}
