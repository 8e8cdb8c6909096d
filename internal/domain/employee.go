package domain

// Employee is a staff member. Every employee belongs to exactly one facility
// and is deleted together with it.
type Employee struct {
	ID         int64
	FacilityID int64
	Name       string
	Email      string
	Phone      string
	Position   string
}
