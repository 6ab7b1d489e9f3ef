package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/core/template"
)

type templateRepository struct {
	db *templateTable
}

var _ template.Repository = (*templateRepository)(nil) // interface compliance check

func NewTemplateRepository(db *DB) template.Repository {
	return &templateRepository{db: db.template}
}

func cloneTemplate(tpl template.Template) template.Template {
	cats := make([]grading.Category, 0, len(tpl.Categories))
	for _, cat := range tpl.Categories {
		cats = append(cats, cat.Clone())
	}
	tpl.Categories = cats
	return tpl
}

func (repo *templateRepository) CreateTemplate(_ context.Context, tpl template.Template) (template.Template, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	tpl = cloneTemplate(tpl)
	tpl.ID = uuid.New().String()
	repo.db.table[tpl.ID] = &tpl
	return cloneTemplate(tpl), nil
}

func (repo *templateRepository) QueryPublicTemplates(_ context.Context) ([]template.Template, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tpls := make([]template.Template, 0, len(repo.db.table))
	for _, tpl := range repo.db.table {
		if tpl.Public {
			tpls = append(tpls, cloneTemplate(*tpl))
		}
	}
	return tpls, nil
}

func (repo *templateRepository) GetTemplate(_ context.Context, id string) (template.Template, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tpl, ok := repo.db.table[id]; ok && tpl.Public {
		return cloneTemplate(*tpl), nil
	}
	return template.Template{}, template.ErrNotFound
}

func (repo *templateRepository) IncrementDownloads(_ context.Context, id string) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	tpl, ok := repo.db.table[id]
	if !ok {
		return 0, template.ErrNotFound
	}
	tpl.DownloadCount++
	return tpl.DownloadCount, nil
}
