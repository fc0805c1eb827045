package entity

// Customer is looked up or created at booking time. Email and phone are
// unique identities; a mismatch against an existing record is a
// conflict, not a lookup miss.
type Customer struct {
	Base
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
}
