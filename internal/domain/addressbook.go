package domain

import "time"

// Keyed is implemented by entities with an integer identity.
type Keyed interface {
	Key() int
}

type Department struct {
	ID   int    `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:50;not null"`
}

func (Department) TableName() string { return "departments" }
func (d Department) Key() int        { return d.ID }

type Job struct {
	ID   int    `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:50;not null"`
}

func (Job) TableName() string { return "jobs" }
func (j Job) Key() int        { return j.ID }

// Employee references Job and Department by foreign key. The JobTitle and
// Department fields are only populated when the query asks for them.
type Employee struct {
	ID           int         `gorm:"primaryKey;autoIncrement"`
	FullName     string      `gorm:"size:200;not null"`
	JobTitleID   int         `gorm:"not null;index"`
	JobTitle     *Job        `gorm:"foreignKey:JobTitleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	DepartmentID int         `gorm:"not null;index"`
	Department   *Department `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	MobileNumber string      `gorm:"size:32;not null"`
	DateOfBirth  time.Time   `gorm:"type:date;not null"`
	Address      string      `gorm:"size:255;not null"`
	Email        string      `gorm:"size:191;not null"`
	Photo        string      `gorm:"size:512"`
	CreatedOn    time.Time   `gorm:"autoCreateTime"`
}

func (Employee) TableName() string { return "employees" }
func (e Employee) Key() int        { return e.ID }

// AgeAt returns the age in whole years on the given day.
func (e *Employee) AgeAt(now time.Time) int {
	age := now.Year() - e.DateOfBirth.Year()
	if now.Month() < e.DateOfBirth.Month() ||
		(now.Month() == e.DateOfBirth.Month() && now.Day() < e.DateOfBirth.Day()) {
		age--
	}
	return age
}

func (e *Employee) Age() int { return e.AgeAt(time.Now()) }
