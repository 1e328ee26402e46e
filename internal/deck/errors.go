package deck

import "errors"

// Sentinel errors for the deck package.
var (
	ErrNoActiveReview = errors.New("deck: no active review")
	ErrNotEditable    = errors.New("deck: card is not editable")
	ErrInvalidBase    = errors.New("deck: invalid base card index")
	ErrCardNotFound   = errors.New("deck: card index out of range")
)
