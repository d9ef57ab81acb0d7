package catalog

import "time"

type Author struct {
	ID        uint
	UserID    uint
	FirstName string
	LastName  string
	BirthDate time.Time
}

func (a Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

type Book struct {
	ID            uint
	Title         string
	Description   *string
	AuthorID      uint
	Price         float64
	PublishedDate time.Time
	CreatedBy     uint
}

type BookFilterInput struct {
	Search   *string
	AuthorID *uint
	MinPrice *float64
	MaxPrice *float64
}
