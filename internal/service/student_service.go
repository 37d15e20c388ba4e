package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/student-roster/internal/models"
	appErrors "github.com/noah-isme/student-roster/pkg/errors"
)

const studentCachePrefix = "students"

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Create(ctx context.Context, student *models.Student) error
}

// StudentService handles roster use-cases.
type StudentService struct {
	repo      studentRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	catalog   models.Catalog
}

// NewStudentService constructs the student service. cache and metrics may be nil.
func NewStudentService(repo studentRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		repo:      repo,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		catalog:   models.DefaultCatalog(),
	}
}

// List returns the roster. The cohort/course constraint applies only when both are present,
// otherwise the whole roster is returned. The boolean reports whether the result came from cache.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, bool, error) {
	filter = filter.Normalize()
	if !filter.Complete() {
		filter = models.StudentFilter{}
	}
	s.metrics.RecordRosterList(filter.Complete())

	key := CacheKey(studentCachePrefix, filter.Cohort, filter.Course)
	var cached []models.Student
	if s.cache.Get(ctx, key, &cached) {
		return cached, true, nil
	}

	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if students == nil {
		students = []models.Student{}
	}
	s.cache.Set(ctx, key, students, 0)
	return students, false, nil
}

// Create enrols a new student. Name, cohort and at least one course must be present.
func (s *StudentService) Create(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error) {
	req = req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	student := &models.Student{
		Name:    req.Name,
		Cohort:  req.Cohort,
		Courses: req.Courses,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	if err := s.cache.Invalidate(ctx, studentCachePrefix+":*"); err != nil {
		s.logger.Warn("roster cache not invalidated", zap.String("student_id", student.ID), zap.Error(err))
	}
	s.metrics.RecordStudentCreated()
	s.logger.Info("student created",
		zap.String("student_id", student.ID),
		zap.String("cohort", student.Cohort),
		zap.Int("courses", len(student.Courses)),
	)
	return student, nil
}

// Catalog returns the cohorts and classes offered for enrollment.
func (s *StudentService) Catalog() models.Catalog {
	return s.catalog
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid student payload"
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch {
	case fe.Field() == "Courses" && fe.Tag() == "min":
		return "at least one course is required"
	case fe.Tag() == "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
