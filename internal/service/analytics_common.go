package service

import (
	"context"

	"github.com/noah-isme/placement-analytics/internal/dto"
	"github.com/noah-isme/placement-analytics/internal/repository"
)

const (
	personaAdmin     = "admin"
	personaStudent   = "student"
	personaRecruiter = "recruiter"

	tracerName = "github.com/noah-isme/placement-analytics/internal/service/analytics"
)

// SourceSelector chooses the data source used for every read of one request.
type SourceSelector interface {
	Select(ctx context.Context) repository.EntityAccessor
}

func adminActivity(item ResolvedApplication) dto.ActivityItem {
	return dto.ActivityItem{
		ID:         item.Application.ExternalID,
		Student:    item.Student.Name,
		Internship: item.Internship.Title,
		Company:    item.Internship.Company,
		Status:     item.Application.Status,
		AppliedAt:  item.Application.AppliedAt,
	}
}

func recruiterActivity(item ResolvedApplication) dto.RecruiterActivityItem {
	return dto.RecruiterActivityItem{
		ID:         item.Application.ExternalID,
		Student:    item.Student.Name,
		Internship: item.Internship.Title,
		Status:     item.Application.Status,
		AppliedAt:  item.Application.AppliedAt,
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string{}, values...)
}
