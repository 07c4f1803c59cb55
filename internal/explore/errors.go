package explore

import "errors"

// Sentinel errors for explorer operations.
var (
	// ErrUnknownRaga indicates a name that neither the catalog nor the fuzzy
	// matcher could resolve.
	ErrUnknownRaga = errors.New("unknown raga")
	// ErrNoForm indicates a catalog entry without a usable ascending form.
	ErrNoForm = errors.New("raga has no arohanam")
	// ErrNoParent indicates a derived raga whose parent is not in the catalog.
	ErrNoParent = errors.New("raga has no parent melakarta")
)
