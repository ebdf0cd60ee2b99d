package validate

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myContacts/models"
)

func TestIsAlphaOrSpace(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Anna", true},
		{"Anna Maria", true},
		{"   ", true},
		{"Zoë Ångström", true},
		{"R2D2", false},
		{"O'Neil", false},
		{"tab\there", false},
		{"dash-name", false},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, IsAlphaOrSpace(c.in), "IsAlphaOrSpace(%q)", c.in)
	}
}

func TestHasNoRepeatedSpace(t *testing.T) {
	assert.True(t, HasNoRepeatedSpace(""))
	assert.True(t, HasNoRepeatedSpace("a b c"))
	assert.True(t, HasNoRepeatedSpace(" a "))
	for _, s := range []string{"  ", "a  b", "ab   ", "  ab", "a b  c d"} {
		assert.Falsef(t, HasNoRepeatedSpace(s), "HasNoRepeatedSpace(%q)", s)
		assert.True(t, strings.Contains(s, "  "))
	}
}

func TestMeetsMinLength(t *testing.T) {
	assert.False(t, MeetsMinLength(2, 3))
	assert.True(t, MeetsMinLength(3, 3))
	assert.True(t, MeetsMinLength(10, 3))
	assert.False(t, MeetsMinLength(9, 10))
}

func TestLengthCountsRunes(t *testing.T) {
	assert.Equal(t, 3, Length("Zoë"))
}

func TestIsDigits(t *testing.T) {
	assert.True(t, IsDigits(""))
	assert.True(t, IsDigits("5551234567"))
	assert.False(t, IsDigits("555-123"))
	assert.False(t, IsDigits("+5551234"))
}

func TestLimits(t *testing.T) {
	ok := models.ContactFields{Name: "ANNA", Job: "DOCTOR", Location: "PUNE", Contact: "5551234567"}
	require.NoError(t, Limits(ok))

	long := ok
	long.Name = strings.Repeat("A", models.NameMaxLen+1)
	err := Limits(long)
	var le *LimitError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "Name", le.Field)
	assert.Equal(t, "max", le.Tag)
	assert.Equal(t, "Name field accepts at most 30 characters", le.Error())
	assert.Equal(t, strconv.Itoa(models.NameMaxLen), le.Param)

	longJob := ok
	longJob.Job = strings.Repeat("B", models.JobMaxLen+1)
	require.ErrorAs(t, Limits(longJob), &le)
	assert.Equal(t, "Job", le.Field)
	assert.Equal(t, strconv.Itoa(models.JobMaxLen), le.Param)

	longNumber := ok
	longNumber.Contact = strings.Repeat("5", models.ContactNumLen+1)
	require.ErrorAs(t, Limits(longNumber), &le)
	assert.Equal(t, "Contact field accepts at most 10 characters", le.Error())

	letters := ok
	letters.Contact = "55512abc"
	err = Limits(letters)
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "Contact", le.Field)
	assert.Equal(t, "digits", le.Tag)

	// Short values are the pipeline's business, not the input layer's.
	require.NoError(t, Limits(models.ContactFields{Contact: "55"}))
}

func TestLimits_Credentials(t *testing.T) {
	require.NoError(t, Limits(models.Credentials{Username: "admin", Password: "1234"}))
	err := Limits(models.Credentials{Username: "", Password: "1234"})
	var le *LimitError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "Username", le.Field)
	assert.Equal(t, "required", le.Tag)

	err = Limits(models.Credentials{Username: "admin", Password: strings.Repeat("x", models.PasswordMaxLen+1)})
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "Password", le.Field)
	assert.Equal(t, "max", le.Tag)
	assert.Equal(t, strconv.Itoa(models.PasswordMaxLen), le.Param)

	err = Limits(models.Credentials{Username: strings.Repeat("u", models.UsernameMaxLen+1), Password: "1234"})
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "Username", le.Field)
}
