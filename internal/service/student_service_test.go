package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/student-roster/internal/models"
	appErrors "github.com/noah-isme/student-roster/pkg/errors"
)

type mockStudentRepo struct {
	students   []models.Student
	lastFilter models.StudentFilter
	listCalls  int
	err        error
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	m.lastFilter = filter
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Student
	for _, s := range m.students {
		if !filter.Complete() || filter.Matches(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.err != nil {
		return m.err
	}
	if student.ID == "" {
		student.ID = "generated"
	}
	student.DateJoined = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.students = append(m.students, *student)
	return nil
}

func seededRepo() *mockStudentRepo {
	return &mockStudentRepo{students: []models.Student{
		{ID: "1", Name: "Ann", Cohort: "AY 2024-25", Courses: []string{"CBSE 9 Mathematics"}},
		{ID: "2", Name: "Ravi", Cohort: "AY 2023-24", Courses: []string{"CBSE 10 Science"}},
	}}
}

func TestStudentServiceListFiltersOnlyWhenComplete(t *testing.T) {
	repo := seededRepo()
	svc := NewStudentService(repo, nil, nil, validator.New(), zap.NewNop())

	students, hit, err := svc.List(context.Background(), models.StudentFilter{Cohort: "AY 2024-25"})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, students, 2)
	assert.Equal(t, models.StudentFilter{}, repo.lastFilter)

	students, _, err = svc.List(context.Background(), models.StudentFilter{Cohort: " AY 2024-25", Course: "CBSE 9 Mathematics "})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Ann", students[0].Name)
	assert.Equal(t, models.StudentFilter{Cohort: "AY 2024-25", Course: "CBSE 9 Mathematics"}, repo.lastFilter)
}

func TestStudentServiceListEmptyIsNotNil(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, nil, nil, nil, nil)

	students, _, err := svc.List(context.Background(), models.StudentFilter{Cohort: "AY 2024-25", Course: "CBSE 9 Mathematics"})
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestStudentServiceListUsesCache(t *testing.T) {
	repo := seededRepo()
	cache := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	svc := NewStudentService(repo, cache, nil, validator.New(), zap.NewNop())
	ctx := context.Background()

	first, hit, err := svc.List(ctx, models.StudentFilter{})
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := svc.List(ctx, models.StudentFilter{})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, first, second)
}

func TestStudentServiceListError(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{err: errors.New("db down")}, nil, nil, validator.New(), zap.NewNop())

	_, _, err := svc.List(context.Background(), models.StudentFilter{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "failed to list students", appErr.Message)
}

func TestStudentServiceCreate(t *testing.T) {
	repo := seededRepo()
	cacheRepo := &stubCacheRepo{}
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	metrics := NewMetricsService()
	svc := NewStudentService(repo, cache, metrics, validator.New(), zap.NewNop())

	student, err := svc.Create(context.Background(), models.CreateStudentRequest{
		Name:    " Meera ",
		Cohort:  "AY 2024-25",
		Courses: []string{"CBSE 9 Hindi", "CBSE 9 English"},
	})
	require.NoError(t, err)
	assert.Equal(t, "generated", student.ID)
	assert.Equal(t, "Meera", student.Name)
	assert.False(t, student.DateJoined.IsZero())
	assert.Nil(t, student.LastLogin)
	assert.Len(t, repo.students, 3)
	assert.Equal(t, []string{"students:*"}, cacheRepo.invalidated)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	cases := []struct {
		name    string
		req     models.CreateStudentRequest
		message string
	}{
		{"missing name", models.CreateStudentRequest{Name: "  ", Cohort: "AY 2024-25", Courses: []string{"CBSE 9 Hindi"}}, "name is required"},
		{"missing cohort", models.CreateStudentRequest{Name: "Ann", Courses: []string{"CBSE 9 Hindi"}}, "cohort is required"},
		{"no courses", models.CreateStudentRequest{Name: "Ann", Cohort: "AY 2024-25"}, "at least one course is required"},
		{"blank courses", models.CreateStudentRequest{Name: "Ann", Cohort: "AY 2024-25", Courses: []string{" ", ""}}, "at least one course is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockStudentRepo{}
			svc := NewStudentService(repo, nil, nil, validator.New(), zap.NewNop())

			_, err := svc.Create(context.Background(), tc.req)
			require.Error(t, err)
			appErr := appErrors.FromError(err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
			assert.Equal(t, tc.message, appErr.Message)
			assert.Empty(t, repo.students)
		})
	}
}

func TestStudentServiceCreateRepoError(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{err: errors.New("insert failed")}, nil, nil, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), models.CreateStudentRequest{Name: "Ann", Cohort: "AY 2024-25", Courses: []string{"CBSE 9 Hindi"}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceCatalog(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, nil, nil, nil, nil)
	assert.Equal(t, models.DefaultCatalog(), svc.Catalog())
}
