package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/placement-analytics/internal/models"
	"github.com/noah-isme/placement-analytics/internal/repository"
)

// Placeholders used when an application references a record that does not exist.
const (
	UnknownStudent    = "Unknown Student"
	UnknownInternship = "Unknown Internship"
	UnknownCompany    = "Unknown Company"
)

const defaultLookupConcurrency = 8

// ResolvedApplication is an application joined to its student and internship.
type ResolvedApplication struct {
	Application     models.Application
	Student         models.Student
	Internship      models.Internship
	StudentFound    bool
	InternshipFound bool
}

// RelationshipResolver joins applications to students and internships through their
// external identifiers. Each distinct identifier is looked up once and lookups run
// concurrently.
type RelationshipResolver struct {
	concurrency int
}

// NewRelationshipResolver bounds the number of in-flight lookups per call.
func NewRelationshipResolver(concurrency int) *RelationshipResolver {
	if concurrency <= 0 {
		concurrency = defaultLookupConcurrency
	}
	return &RelationshipResolver{concurrency: concurrency}
}

// Resolve joins a single application.
func (r *RelationshipResolver) Resolve(ctx context.Context, source repository.EntityAccessor, application models.Application) (ResolvedApplication, error) {
	resolved, err := r.ResolveAll(ctx, source, []models.Application{application})
	if err != nil {
		return ResolvedApplication{}, err
	}
	return resolved[0], nil
}

// ResolveAll joins every application, preserving input order. Dangling references
// resolve to placeholders; only store failures are returned as errors.
func (r *RelationshipResolver) ResolveAll(ctx context.Context, source repository.EntityAccessor, applications []models.Application) ([]ResolvedApplication, error) {
	var mu sync.Mutex
	students := make(map[string]models.Student)
	internships := make(map[string]models.Internship)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, id := range distinct(applications, func(a models.Application) string { return a.StudentID }) {
		id := id
		g.Go(func() error {
			student, err := source.FindStudentByID(gctx, id)
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("resolve student %q: %w", id, err)
			}
			mu.Lock()
			students[id] = student
			mu.Unlock()
			return nil
		})
	}

	for _, id := range distinct(applications, func(a models.Application) string { return a.InternshipID }) {
		id := id
		g.Go(func() error {
			internship, err := source.FindInternshipByID(gctx, id)
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("resolve internship %q: %w", id, err)
			}
			mu.Lock()
			internships[id] = internship
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved := make([]ResolvedApplication, 0, len(applications))
	for _, application := range applications {
		item := ResolvedApplication{Application: application}

		if student, ok := students[application.StudentID]; ok {
			item.Student, item.StudentFound = student, true
		} else {
			item.Student = models.Student{ExternalID: application.StudentID, Name: UnknownStudent}
		}

		if internship, ok := internships[application.InternshipID]; ok {
			item.Internship, item.InternshipFound = internship, true
		} else {
			item.Internship = models.Internship{ExternalID: application.InternshipID, Title: UnknownInternship, Company: UnknownCompany}
		}

		resolved = append(resolved, item)
	}
	return resolved, nil
}

func distinct(applications []models.Application, key func(models.Application) string) []string {
	seen := make(map[string]struct{}, len(applications))
	ids := make([]string, 0, len(applications))
	for _, application := range applications {
		id := key(application)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
