package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("raffle unavailable")
	ErrInvalidInput = errors.New("invalid input")
)

// EntityKind names the registry a missing id belongs to.
type EntityKind string

const (
	KindPromo       EntityKind = "promo"
	KindParticipant EntityKind = "participant"
	KindPrize       EntityKind = "prize"
)

// Reasons a raffle cannot run.
const (
	ReasonNoParticipants = "no participants"
	ReasonNoPrizes       = "no prizes"
	ReasonCountMismatch  = "count mismatch"
)

// NotFoundError reports a missing record or, when PromoID is set,
// an id that is not associated with that promo.
type NotFoundError struct {
	Kind    EntityKind
	ID      int
	PromoID int
}

func (e *NotFoundError) Error() string {
	if e.PromoID != 0 {
		return fmt.Sprintf("%s %d in promo %d not found", capitalize(e.Kind), e.ID, e.PromoID)
	}
	return fmt.Sprintf("%s %d not found", capitalize(e.Kind), e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InPromo reports whether the error is about a missing association rather
// than a missing record.
func (e *NotFoundError) InPromo() bool { return e.PromoID != 0 }

// UnavailableError reports a failed raffle precondition.
type UnavailableError struct {
	PromoID int
	Reason  string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("raffle for promo %d unavailable: %s", e.PromoID, e.Reason)
}

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// InvalidInputError reports a missing or empty required field.
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("field %q is required", e.Field)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func capitalize(k EntityKind) string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
