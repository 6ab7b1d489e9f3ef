package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/grading"
	"github.com/trezcool/gradebook/core/template"
)

const templateColumns = "id, university, course_code, course_title, instructor, categories, public, download_count, created_at, created_by"

type templateRow struct {
	ID            string    `db:"id"`
	University    string    `db:"university"`
	CourseCode    string    `db:"course_code"`
	CourseTitle   string    `db:"course_title"`
	Instructor    string    `db:"instructor"`
	Categories    string    `db:"categories"`
	Public        bool      `db:"public"`
	DownloadCount int       `db:"download_count"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
}

func (row templateRow) toTemplate() (template.Template, error) {
	tpl := template.Template{
		ID:            row.ID,
		University:    row.University,
		CourseCode:    row.CourseCode,
		CourseTitle:   row.CourseTitle,
		Instructor:    row.Instructor,
		Categories:    []grading.Category{},
		Public:        row.Public,
		DownloadCount: row.DownloadCount,
		CreatedAt:     row.CreatedAt.UTC(),
		CreatedBy:     row.CreatedBy,
	}
	if err := fromJSON(row.Categories, &tpl.Categories); err != nil {
		return template.Template{}, errors.Wrapf(err, "decoding categories of template %s", row.ID)
	}
	return tpl, nil
}

type templateRepository struct {
	db *sqlx.DB
}

var _ template.Repository = (*templateRepository)(nil) // interface compliance check

func NewTemplateRepository(db *sqlx.DB) template.Repository {
	return &templateRepository{db: db}
}

func (repo *templateRepository) CreateTemplate(ctx context.Context, tpl template.Template) (template.Template, error) {
	cats := tpl.Categories
	if cats == nil {
		cats = []grading.Category{}
	}
	catsJSON, err := toJSON(cats)
	if err != nil {
		return template.Template{}, errors.Wrap(err, "encoding categories")
	}
	row := templateRow{
		ID:            uuid.New().String(),
		University:    tpl.University,
		CourseCode:    tpl.CourseCode,
		CourseTitle:   tpl.CourseTitle,
		Instructor:    tpl.Instructor,
		Categories:    catsJSON,
		Public:        tpl.Public,
		DownloadCount: tpl.DownloadCount,
		CreatedAt:     tpl.CreatedAt.UTC(),
		CreatedBy:     tpl.CreatedBy,
	}

	q := `INSERT INTO templates (` + templateColumns + `)
		VALUES (:id, :university, :course_code, :course_title, :instructor, :categories, :public, :download_count, :created_at, :created_by)`
	if _, err = repo.db.NamedExecContext(ctx, q, row); err != nil {
		return template.Template{}, errors.Wrap(err, "inserting template")
	}
	return row.toTemplate()
}

func (repo *templateRepository) QueryPublicTemplates(ctx context.Context) ([]template.Template, error) {
	q := `SELECT ` + templateColumns + ` FROM templates WHERE public = ?`
	var rows []templateRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), true); err != nil {
		return nil, errors.Wrap(err, "selecting templates")
	}

	tpls := make([]template.Template, 0, len(rows))
	for _, row := range rows {
		tpl, err := row.toTemplate()
		if err != nil {
			return nil, err
		}
		tpls = append(tpls, tpl)
	}
	return tpls, nil
}

func (repo *templateRepository) GetTemplate(ctx context.Context, id string) (template.Template, error) {
	q := `SELECT ` + templateColumns + ` FROM templates WHERE id = ? AND public = ?`
	var row templateRow
	if err := repo.db.GetContext(ctx, &row, repo.db.Rebind(q), id, true); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return template.Template{}, template.ErrNotFound
		}
		return template.Template{}, errors.Wrap(err, "selecting template")
	}
	return row.toTemplate()
}

func (repo *templateRepository) IncrementDownloads(ctx context.Context, id string) (int, error) {
	res, err := repo.db.ExecContext(ctx, repo.db.Rebind(`UPDATE templates SET download_count = download_count + 1 WHERE id = ?`), id)
	if err != nil {
		return 0, errors.Wrap(err, "counting template download")
	}
	if err = checkAffected(res, template.ErrNotFound); err != nil {
		return 0, err
	}

	var count int
	if err = repo.db.GetContext(ctx, &count, repo.db.Rebind(`SELECT download_count FROM templates WHERE id = ?`), id); err != nil {
		return 0, errors.Wrap(err, "selecting download count")
	}
	return count, nil
}
