package template

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

var ErrNotFound = core.NewNotFoundError("template")

type (
	Repository interface {
		CreateTemplate(ctx context.Context, tpl Template) (Template, error)
		QueryPublicTemplates(ctx context.Context) ([]Template, error)
		// GetTemplate returns ErrNotFound for unknown and private templates.
		GetTemplate(ctx context.Context, id string) (Template, error)
		// IncrementDownloads bumps the download count and returns the new count.
		IncrementDownloads(ctx context.Context, id string) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
	).CheckAndPanic()

	return &Service{repo: repo}
}

// Publish stores the category structure of a course without the author's grades.
func (svc *Service) Publish(ctx context.Context, userID string, nt NewTemplate) (Template, error) {
	cats := make([]grading.Category, 0, len(nt.Categories))
	for _, cat := range nt.Categories {
		cat = cat.Clone()
		cat.Grade = 0
		cat.Assignments = nil
		if !cat.Manual {
			cat.Assignments = []grading.Assignment{{Score: 0, MaxScore: 100}}
		}
		cats = append(cats, cat)
	}

	return svc.repo.CreateTemplate(ctx, Template{
		University:  nt.University,
		CourseCode:  nt.CourseCode,
		CourseTitle: nt.CourseTitle,
		Instructor:  nt.Instructor,
		Categories:  cats,
		Public:      !nt.Private,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   userID,
	})
}

// Search filters the public templates, sorted by course code then title.
func (svc *Service) Search(ctx context.Context, filter SearchFilter) (Page, error) {
	all, err := svc.repo.QueryPublicTemplates(ctx)
	if err != nil {
		return Page{}, err
	}

	query := core.CleanString(filter.Query, true /* lower */)
	univ := core.CleanString(filter.University, true /* lower */)
	matches := make([]Template, 0, len(all))
	for _, tpl := range all {
		if univ != "" && !strings.Contains(strings.ToLower(tpl.University), univ) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(tpl.CourseCode), query) &&
			!strings.Contains(strings.ToLower(tpl.CourseTitle), query) &&
			!strings.Contains(strings.ToLower(tpl.Instructor), query) {
			continue
		}
		matches = append(matches, tpl)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		ci, cj := strings.ToLower(matches[i].CourseCode), strings.ToLower(matches[j].CourseCode)
		if ci != cj {
			return ci < cj
		}
		return strings.ToLower(matches[i].CourseTitle) < strings.ToLower(matches[j].CourseTitle)
	})

	pr := filter.PageRequest
	pr.Clamp()
	pagination := core.NewPagination(pr, len(matches))
	start, end := pagination.Bounds()
	return Page{Data: matches[start:end], Pagination: pagination}, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Template, error) {
	return svc.repo.GetTemplate(ctx, id)
}

// Import returns the categories of a template, seeded so that a fresh course starts at 100%,
// and counts the download.
func (svc *Service) Import(ctx context.Context, id string) ([]grading.Category, error) {
	tpl, err := svc.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := svc.repo.IncrementDownloads(ctx, id); err != nil {
		return nil, errors.Wrap(err, "counting template download")
	}

	cats := make([]grading.Category, 0, len(tpl.Categories))
	for _, cat := range tpl.Categories {
		cat = cat.Clone()
		if cat.Manual {
			cat.Grade = 100
			cat.Assignments = nil
		} else {
			cat.Grade = 0
			cat.Assignments = []grading.Assignment{{Score: 100, MaxScore: 100}}
		}
		cats = append(cats, cat)
	}
	return cats, nil
}
