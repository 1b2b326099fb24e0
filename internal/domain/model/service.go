package model

// Service is a bookable catalog entry.
type Service struct {
	ID          string
	Name        string
	Category    string
	Price       float64
	Duration    string
	Icon        string
	Description string
}
