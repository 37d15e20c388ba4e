package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/student-roster/internal/models"
)

type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// studentRow mirrors the students table; courses is a Postgres text[].
type studentRow struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	Cohort     string         `db:"cohort"`
	Courses    pq.StringArray `db:"courses"`
	DateJoined time.Time      `db:"date_joined"`
	LastLogin  *time.Time     `db:"last_login"`
}

func (r studentRow) toModel() models.Student {
	courses := []string(r.Courses)
	if courses == nil {
		courses = []string{}
	}
	return models.Student{
		ID:         r.ID,
		Name:       r.Name,
		Cohort:     r.Cohort,
		Courses:    courses,
		DateJoined: r.DateJoined,
		LastLogin:  r.LastLogin,
	}
}

const studentColumns = "id, name, cohort, courses, date_joined, last_login"

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db      *sqlx.DB
	metrics queryObserver
}

// NewStudentRepository constructs a StudentRepository. metrics may be nil.
func NewStudentRepository(db *sqlx.DB, metrics queryObserver) *StudentRepository {
	return &StudentRepository{db: db, metrics: metrics}
}

// List returns students in join order. The cohort/course constraint is applied only when both
// are present; otherwise every student is returned.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students"
	var args []interface{}
	if filter.Complete() {
		query += " WHERE cohort = $1 AND $2 = ANY(courses)"
		args = append(args, filter.Cohort, filter.Course)
	}
	query += " ORDER BY date_joined ASC, id ASC"

	start := time.Now()
	var rows []studentRow
	err := r.db.SelectContext(ctx, &rows, query, args...)
	r.observe("students.list", start)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	students := make([]models.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toModel())
	}
	return students, nil
}

// Create inserts a new student record, assigning its ID and join date.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.DateJoined.IsZero() {
		student.DateJoined = time.Now().UTC()
	}
	row := studentRow{
		ID:         student.ID,
		Name:       student.Name,
		Cohort:     student.Cohort,
		Courses:    pq.StringArray(student.Courses),
		DateJoined: student.DateJoined,
		LastLogin:  student.LastLogin,
	}
	const query = `INSERT INTO students (id, name, cohort, courses, date_joined, last_login)
        VALUES (:id, :name, :cohort, :courses, :date_joined, :last_login)`

	start := time.Now()
	_, err := r.db.NamedExecContext(ctx, query, row)
	r.observe("students.create", start)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

func (r *StudentRepository) observe(label string, start time.Time) {
	if r.metrics != nil {
		r.metrics.ObserveDBQuery(label, time.Since(start))
	}
}
