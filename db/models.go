package db

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

const DateLayout = "2006-01-02"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Person struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Nickname  string    `json:"nickname"`
	Birthdate Date      `json:"birthdate"`
	Stack     []string  `json:"stack"`
}

// clone returns a copy that shares no slices with p.
func (p Person) clone() Person {
	p.Stack = slices.Clone(p.Stack)
	return p
}

// Date is a calendar day serialized as YYYY-MM-DD.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts only real calendar dates, so 2000-02-30 fails.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

func (d Date) Time() time.Time { return d.t }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string { return d.t.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Seed returns the record every fresh store starts with.
func Seed() Person {
	return Person{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      "Marcos Felipe",
		Nickname:  "marcosvieira",
		Birthdate: NewDate(1992, time.April, 12),
		Stack:     []string{"frontend", "backend"},
	}
}
