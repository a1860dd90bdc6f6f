package employee

import (
	"fmt"
	"strings"
	"time"

	"go-gin-addressbook/internal/domain"
)

const dateLayout = "2006-01-02"

// EmployeeDto is the request body for AddEmployee and UpdateEmployee.
type EmployeeDto struct {
	ID           int    `json:"id"`
	FullName     string `json:"fullName" binding:"required,max=200"`
	JobTitleID   int    `json:"jobTitleId" binding:"required,min=1"`
	DepartmentID int    `json:"departmentId" binding:"required,min=1"`
	MobileNumber string `json:"mobileNumber" binding:"required,phone"`
	DateOfBirth  string `json:"dateOfBirth" binding:"required"`
	Address      string `json:"address" binding:"required,max=255"`
	Email        string `json:"email" binding:"required,email,max=191"`
	Photo        string `json:"photo" binding:"omitempty,max=512"`
}

type EmployeeResponse struct {
	ID           int       `json:"id"`
	FullName     string    `json:"fullName"`
	JobTitleID   int       `json:"jobTitleId"`
	JobTitle     string    `json:"jobTitle"`
	DepartmentID int       `json:"departmentId"`
	Department   string    `json:"department"`
	MobileNumber string    `json:"mobileNumber"`
	DateOfBirth  string    `json:"dateOfBirth"`
	Address      string    `json:"address"`
	Email        string    `json:"email"`
	Photo        string    `json:"photo"`
	Age          int       `json:"age"`
	CreatedOn    time.Time `json:"createdOn"`
}

// ParseDate accepts a bare date or a timestamp and keeps the calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad date %q", domain.ErrInvalidInput, s)
}

type Mapper struct {
	Now func() time.Time
}

func (m Mapper) ToEntity(in *EmployeeDto, dst *domain.Employee) error {
	dob, err := ParseDate(in.DateOfBirth)
	if err != nil {
		return err
	}
	dst.FullName = strings.TrimSpace(in.FullName)
	dst.JobTitleID = in.JobTitleID
	dst.DepartmentID = in.DepartmentID
	dst.MobileNumber = strings.TrimSpace(in.MobileNumber)
	dst.DateOfBirth = dob
	dst.Address = strings.TrimSpace(in.Address)
	dst.Email = strings.TrimSpace(in.Email)
	dst.Photo = in.Photo
	return nil
}

func (m Mapper) ToDTO(e *domain.Employee) EmployeeResponse {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	out := EmployeeResponse{
		ID:           e.ID,
		FullName:     e.FullName,
		JobTitleID:   e.JobTitleID,
		DepartmentID: e.DepartmentID,
		MobileNumber: e.MobileNumber,
		DateOfBirth:  e.DateOfBirth.Format(dateLayout),
		Address:      e.Address,
		Email:        e.Email,
		Photo:        e.Photo,
		Age:          e.AgeAt(now()),
		CreatedOn:    e.CreatedOn,
	}
	if e.JobTitle != nil {
		out.JobTitle = e.JobTitle.Name
	}
	if e.Department != nil {
		out.Department = e.Department.Name
	}
	return out
}
