package models

// Column limits of the contacts table. The minimums are enforced by the
// validation pipeline, the maximums by the input layer through the *_len
// validator aliases registered in internal/validate.
const (
	NameMaxLen     = 30
	JobMaxLen      = 20
	LocationMaxLen = 20
	ContactNumLen  = 10
	TextMinLen     = 3
)

// Contact represents a person in the contacts book.
// It maps to the `contacts` table in SQLite.
type Contact struct {
	ID       int64  `db:"id" json:"id" yaml:"id"`
	Name     string `db:"name" json:"name" yaml:"name"`
	Job      string `db:"job" json:"job" yaml:"job"`
	Location string `db:"location" json:"location" yaml:"location"`
	Contact  string `db:"contact" json:"contact" yaml:"contact"`
}

// ContactFields holds the four editable columns of a contact, as submitted
// by the presentation layer before validation.
type ContactFields struct {
	Name     string `validate:"name_len"`
	Job      string `validate:"job_len"`
	Location string `validate:"location_len"`
	Contact  string `validate:"contact_len"`
}

// Fields returns the editable columns of c.
func (c Contact) Fields() ContactFields {
	return ContactFields{Name: c.Name, Job: c.Job, Location: c.Location, Contact: c.Contact}
}

// SearchColumn names a column the contact list can be filtered on.
type SearchColumn string

const (
	SearchByName     SearchColumn = "name"
	SearchByJob      SearchColumn = "job"
	SearchByLocation SearchColumn = "location"
	SearchByContact  SearchColumn = "contact"
)

// Valid reports whether s is one of the searchable columns.
func (s SearchColumn) Valid() bool {
	switch s {
	case SearchByName, SearchByJob, SearchByLocation, SearchByContact:
		return true
	}
	return false
}

// ContactFilter is an optional prefix filter on one column.
// A zero value (or an empty Prefix) matches every contact.
type ContactFilter struct {
	Column SearchColumn
	Prefix string
}
