package emissions

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for the calculation model.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrNegativeQuantity indicates a negative activity quantity.
	// Activity inputs are rejected rather than clamped so that user
	// mistakes surface instead of being silently masked.
	ErrNegativeQuantity = constError("negative activity quantity")

	// ErrInvalidQuantity indicates an activity quantity that is NaN or
	// infinite and cannot participate in the calculation.
	ErrInvalidQuantity = constError("activity quantity is not a finite number")

	// ErrInvalidParameter indicates an optimization parameter that is
	// NaN or infinite. Out-of-range finite values are clamped, not
	// rejected.
	ErrInvalidParameter = constError("optimization parameter is not a finite number")

	// ErrNegativeFactor indicates a negative emission factor.
	ErrNegativeFactor = constError("negative emission factor")

	// ErrInvalidFactor indicates an emission factor that is NaN or
	// infinite.
	ErrInvalidFactor = constError("emission factor is not a finite number")

	// ErrUnknownCategory indicates a category name outside the fixed
	// category set.
	ErrUnknownCategory = constError("unknown emissions category")
)
