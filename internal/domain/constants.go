package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxCustomerNameLength       = 200
	MaxCustomerContactLength    = 50
	MaxCancellationReasonLength = 500
)
