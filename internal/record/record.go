// Package record defines a computed fiscal code saved together with the
// identity it was derived from.
package record

import (
	"time"

	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/fiscalcode"
)

// Record links a fiscal code to the person it encodes.
type Record struct {
	ID        string            `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	BirthDate time.Time         `json:"birth_date"`
	Gender    fiscalcode.Gender `json:"gender"`
	PlaceCode string            `json:"place_code"`
	Code      string            `json:"code"`
	CreatedAt time.Time         `json:"created_at"`
}

// Person returns the identity fields as a fiscalcode.Person.
func (r Record) Person() fiscalcode.Person {
	return fiscalcode.Person{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		BirthDate: r.BirthDate,
		Gender:    r.Gender,
		PlaceCode: r.PlaceCode,
	}
}
