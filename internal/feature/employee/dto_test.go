package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-addressbook/internal/domain"
)

func TestParseDate(t *testing.T) {
	want := time.Date(1990, time.March, 4, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"1990-03-04", " 1990-03-04 ", "1990-03-04T00:00:00Z", "1990-03-04T18:30:00+02:00", "1990-03-04T09:15:00"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := ParseDate("04/03/1990")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMapper_ToEntityKeepsKey(t *testing.T) {
	dst := domain.Employee{ID: 7, CreatedOn: time.Unix(100, 0)}
	err := Mapper{}.ToEntity(&EmployeeDto{
		ID:           99,
		FullName:     "  Ada Lovelace ",
		JobTitleID:   1,
		DepartmentID: 2,
		MobileNumber: "+44 20 7946 0018",
		DateOfBirth:  "1815-12-10",
		Address:      "St James's Square",
		Email:        "ada@example.com",
	}, &dst)
	require.NoError(t, err)
	assert.Equal(t, 7, dst.ID)
	assert.Equal(t, "Ada Lovelace", dst.FullName)
	assert.Equal(t, time.Unix(100, 0), dst.CreatedOn)
	assert.Equal(t, 1815, dst.DateOfBirth.Year())

	err = Mapper{}.ToEntity(&EmployeeDto{DateOfBirth: "soon"}, &dst)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMapper_ToDTO(t *testing.T) {
	now := func() time.Time { return time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC) }
	e := &domain.Employee{
		ID:           3,
		FullName:     "Grace Hopper",
		JobTitleID:   1,
		JobTitle:     &domain.Job{ID: 1, Name: "Admiral"},
		DepartmentID: 2,
		DateOfBirth:  time.Date(1990, time.March, 5, 0, 0, 0, 0, time.UTC),
	}
	out := Mapper{Now: now}.ToDTO(e)
	assert.Equal(t, "Admiral", out.JobTitle)
	assert.Empty(t, out.Department)
	assert.Equal(t, "1990-03-05", out.DateOfBirth)
	// birthday is tomorrow
	assert.Equal(t, 33, out.Age)
}
