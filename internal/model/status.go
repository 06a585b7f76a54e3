package model

// ListingStatus is shared by sale listings and purchase requests.
// Only PENDING -> ACTIVE has an in-system transition (contract confirm);
// the remaining states are set by back-office tooling.
type ListingStatus string

const (
	StatusPending   ListingStatus = "PENDING"
	StatusActive    ListingStatus = "ACTIVE"
	StatusCompleted ListingStatus = "COMPLETED"
	StatusExpired   ListingStatus = "EXPIRED"
	StatusCancelled ListingStatus = "CANCELLED"
)
