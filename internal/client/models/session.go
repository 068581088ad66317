package models

import "time"

// Session is the credential kept between runs.
type Session struct {
	Email   string
	Token   string
	SavedAt time.Time
}
