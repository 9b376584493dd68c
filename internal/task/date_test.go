package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-06")
	assert.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.March, 6), d)
	assert.Equal(t, "2026-03-06", d.String())
	assert.Equal(t, "March 6, 2026", d.Long())

	d, err = ParseDate("  2026-03-06  ")
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-06", d.String())

	_, err = ParseDate("")
	assert.Error(t, err)
	_, err = ParseDate("06/03/2026")
	assert.Error(t, err)
	_, err = ParseDate("2026-13-40")
	assert.Error(t, err)
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2026, time.March, 5)
	b := NewDate(2026, time.March, 6)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(NewDate(2026, time.March, 5)))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(a))
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2026, time.March, 6)

	raw, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2026-03-06"`, string(raw))

	var back Date
	assert.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back))

	var empty Date
	assert.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.True(t, empty.IsZero())

	var bad Date
	assert.Error(t, json.Unmarshal([]byte(`"March 6"`), &bad))
}
