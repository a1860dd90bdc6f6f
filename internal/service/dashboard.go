package service

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type DashboardData struct {
	UsersCount      int64 `json:"usersCount"`
	EmployeeCount   int64 `json:"employeeCount"`
	DepartmentCount int64 `json:"departmentCount"`
	JobsCount       int64 `json:"jobsCount"`
}

type DashboardService struct {
	users, employees, departments, jobs Counter
}

func NewDashboardService(users, employees, departments, jobs Counter) *DashboardService {
	return &DashboardService{users: users, employees: employees, departments: departments, jobs: jobs}
}

// GetDashboardData runs the four counts concurrently.
func (s *DashboardService) GetDashboardData(ctx context.Context) (*DashboardData, error) {
	var d DashboardData
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range []struct {
		c   Counter
		dst *int64
	}{
		{s.users, &d.UsersCount},
		{s.employees, &d.EmployeeCount},
		{s.departments, &d.DepartmentCount},
		{s.jobs, &d.JobsCount},
	} {
		g.Go(func() error {
			n, err := job.c.Count(ctx)
			if err != nil {
				return err
			}
			*job.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}
