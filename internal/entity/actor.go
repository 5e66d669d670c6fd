package entity

// Actor is the identity performing a request. The zero value is an
// anonymous visitor.
type Actor struct {
	UserID        string
	Authenticated bool
	IsSuperuser   bool
}

func Anonymous() Actor {
	return Actor{}
}
