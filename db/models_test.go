package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_whenValid_shouldParse(t *testing.T) {
	d, err := ParseDate("1815-12-10")
	require.NoError(t, err)
	assert.Equal(t, NewDate(1815, time.December, 10), d)
	assert.Equal(t, "1815-12-10", d.String())
}

func TestParseDate_whenInvalid_shouldFail(t *testing.T) {
	for _, input := range []string{"", "2000-30-01", "2001-02-29", "12-12-2012", "2000-10-01T00:00:00Z", "2000/10/01"} {
		_, err := ParseDate(input)
		assert.Error(t, err, input)
	}
}

func TestPersonJson_shouldUseDateLayout(t *testing.T) {
	person := Seed()

	b, err := json.Marshal(person)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"birthdate":"1992-04-12"`)
	assert.Contains(t, string(b), `"stack":["frontend","backend"]`)

	var decoded Person
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, person, decoded)
}

func TestPersonJson_whenStackAbsent_shouldSerializeNull(t *testing.T) {
	person := Seed()
	person.Stack = nil

	b, err := json.Marshal(person)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"stack":null`)
}

func TestDateUnmarshal_whenNotAString_shouldFail(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`19921204`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"1992-13-04"`), &d))
	assert.True(t, d.IsZero())
}
