package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

const gradingPeriodColumns = "id, user_id, name, is_completed, courses, grade, core_grade, gpa, core_gpa, created_at, updated_at"

type gradingPeriodRow struct {
	ID          string       `db:"id"`
	UserID      string       `db:"user_id"`
	Name        string       `db:"name"`
	IsCompleted bool         `db:"is_completed"`
	Courses     string       `db:"courses"`
	Grade       float64      `db:"grade"`
	CoreGrade   null.Float64 `db:"core_grade"`
	GPA         null.Float64 `db:"gpa"`
	CoreGPA     null.Float64 `db:"core_gpa"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func toGradingPeriodRow(gp grading.GradingPeriod) (gradingPeriodRow, error) {
	courses := gp.Courses
	if courses == nil {
		courses = []grading.Course{}
	}
	coursesJSON, err := toJSON(courses)
	if err != nil {
		return gradingPeriodRow{}, errors.Wrap(err, "encoding courses")
	}
	return gradingPeriodRow{
		ID:          gp.ID,
		UserID:      gp.UserID,
		Name:        gp.Name,
		IsCompleted: gp.IsCompleted,
		Courses:     coursesJSON,
		Grade:       gp.Grade,
		CoreGrade:   null.Float64FromPtr(gp.CoreGrade),
		GPA:         null.Float64FromPtr(gp.GPA),
		CoreGPA:     null.Float64FromPtr(gp.CoreGPA),
		CreatedAt:   gp.CreatedAt.UTC(),
		UpdatedAt:   gp.UpdatedAt.UTC(),
	}, nil
}

func (row gradingPeriodRow) toGradingPeriod() (grading.GradingPeriod, error) {
	gp := grading.GradingPeriod{
		ID:          row.ID,
		UserID:      row.UserID,
		Name:        row.Name,
		IsCompleted: row.IsCompleted,
		Courses:     []grading.Course{},
		Grade:       row.Grade,
		CoreGrade:   row.CoreGrade.Ptr(),
		GPA:         row.GPA.Ptr(),
		CoreGPA:     row.CoreGPA.Ptr(),
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
	if err := fromJSON(row.Courses, &gp.Courses); err != nil {
		return grading.GradingPeriod{}, errors.Wrapf(err, "decoding courses of grading period %s", row.ID)
	}
	return gp, nil
}

type gradingPeriodRepository struct {
	db *sqlx.DB
}

var _ grading.Repository = (*gradingPeriodRepository)(nil) // interface compliance check

func NewGradingPeriodRepository(db *sqlx.DB) grading.Repository {
	return &gradingPeriodRepository{db: db}
}

func (repo *gradingPeriodRepository) CreateGradingPeriod(ctx context.Context, gp grading.GradingPeriod) (grading.GradingPeriod, error) {
	gp.ID = uuid.New().String()
	row, err := toGradingPeriodRow(gp)
	if err != nil {
		return grading.GradingPeriod{}, err
	}

	q := `INSERT INTO grading_periods (` + gradingPeriodColumns + `)
		VALUES (:id, :user_id, :name, :is_completed, :courses, :grade, :core_grade, :gpa, :core_gpa, :created_at, :updated_at)`
	if _, err = repo.db.NamedExecContext(ctx, q, row); err != nil {
		return grading.GradingPeriod{}, errors.Wrap(err, "inserting grading period")
	}
	return row.toGradingPeriod()
}

func (repo *gradingPeriodRepository) QueryGradingPeriods(ctx context.Context, userID string, ordering ...core.DBOrdering) ([]grading.GradingPeriod, error) {
	orderBy := make([]string, 0, len(ordering)+1)
	for _, ord := range ordering {
		// ordering fields are whitelisted by the service
		orderBy = append(orderBy, ord.String())
	}
	orderBy = append(orderBy, "created_at ASC", "id ASC")

	q := `SELECT ` + gradingPeriodColumns + ` FROM grading_periods WHERE user_id = ? ORDER BY ` + strings.Join(orderBy, ", ")
	var rows []gradingPeriodRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), userID); err != nil {
		return nil, errors.Wrap(err, "selecting grading periods")
	}

	periods := make([]grading.GradingPeriod, 0, len(rows))
	for _, row := range rows {
		gp, err := row.toGradingPeriod()
		if err != nil {
			return nil, err
		}
		periods = append(periods, gp)
	}
	return periods, nil
}

func (repo *gradingPeriodRepository) GetGradingPeriod(ctx context.Context, userID, id string) (grading.GradingPeriod, error) {
	q := `SELECT ` + gradingPeriodColumns + ` FROM grading_periods WHERE id = ? AND user_id = ?`
	var row gradingPeriodRow
	if err := repo.db.GetContext(ctx, &row, repo.db.Rebind(q), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return grading.GradingPeriod{}, grading.ErrNotFound
		}
		return grading.GradingPeriod{}, errors.Wrap(err, "selecting grading period")
	}
	return row.toGradingPeriod()
}

func (repo *gradingPeriodRepository) UpdateGradingPeriod(ctx context.Context, gp grading.GradingPeriod) (grading.GradingPeriod, error) {
	row, err := toGradingPeriodRow(gp)
	if err != nil {
		return grading.GradingPeriod{}, err
	}

	q := `UPDATE grading_periods
		SET name = :name, is_completed = :is_completed, courses = :courses, grade = :grade,
			core_grade = :core_grade, gpa = :gpa, core_gpa = :core_gpa, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return grading.GradingPeriod{}, errors.Wrap(err, "updating grading period")
	}
	if err = checkAffected(res, grading.ErrNotFound); err != nil {
		return grading.GradingPeriod{}, err
	}
	return repo.GetGradingPeriod(ctx, gp.UserID, gp.ID)
}

func (repo *gradingPeriodRepository) DeleteGradingPeriod(ctx context.Context, userID, id string) error {
	q := `DELETE FROM grading_periods WHERE id = ? AND user_id = ?`
	res, err := repo.db.ExecContext(ctx, repo.db.Rebind(q), id, userID)
	if err != nil {
		return errors.Wrap(err, "deleting grading period")
	}
	return checkAffected(res, grading.ErrNotFound)
}
