package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-gin-addressbook/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEmployee_AgeAt(t *testing.T) {
	e := domain.Employee{DateOfBirth: day(2000, time.June, 15)}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"day before birthday", day(2024, time.June, 14), 23},
		{"on birthday", day(2024, time.June, 15), 24},
		{"day after birthday", day(2024, time.June, 16), 24},
		{"earlier month", day(2024, time.January, 31), 23},
		{"later month", day(2024, time.December, 1), 24},
		{"birth year", day(2000, time.June, 15), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.AgeAt(tt.now))
		})
	}
}

func TestEmployee_AgeAt_LeapDay(t *testing.T) {
	e := domain.Employee{DateOfBirth: day(2004, time.February, 29)}

	assert.Equal(t, 20, e.AgeAt(day(2025, time.February, 28)))
	assert.Equal(t, 21, e.AgeAt(day(2025, time.March, 1)))
}

func TestUser_Roles(t *testing.T) {
	u := domain.User{Roles: []domain.UserRole{{Role: domain.RoleUser}, {Role: domain.RoleAdmin}}}

	assert.Equal(t, []string{"User", "Admin"}, u.RoleNames())
	assert.True(t, u.HasRole(domain.RoleAdmin))
	assert.False(t, u.HasRole("Auditor"))
}
