package domain

// Location is the physical address of a facility.
// A location may not be deleted while a facility references it.
type Location struct {
	ID          int64
	City        string
	Address     string
	ZipCode     string
	CountryCode string
	PhoneNumber string
}
