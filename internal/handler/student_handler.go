package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-roster/internal/middleware"
	"github.com/noah-isme/student-roster/internal/models"
	"github.com/noah-isme/student-roster/internal/service"
	appErrors "github.com/noah-isme/student-roster/pkg/errors"
	"github.com/noah-isme/student-roster/pkg/response"
)

type studentService interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, bool, error)
	Create(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error)
	Catalog() models.Catalog
}

type rosterExporter interface {
	Export(ctx context.Context, filter models.StudentFilter, format string) (*service.ExportResult, error)
}

// StudentHandler exposes roster endpoints.
type StudentHandler struct {
	students studentService
	exporter rosterExporter
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService, exporter rosterExporter) *StudentHandler {
	return &StudentHandler{students: students, exporter: exporter}
}

func filterFromQuery(c *gin.Context) models.StudentFilter {
	return models.StudentFilter{Cohort: c.Query("cohort"), Course: c.Query("course")}.Normalize()
}

// List godoc
// @Summary List students
// @Description Filters by cohort and course only when both are supplied.
// @Tags Students
// @Produce json
// @Param cohort query string false "Cohort, e.g. AY 2024-25"
// @Param course query string false "Course label, e.g. CBSE 9 Mathematics"
// @Success 200 {array} models.Student
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, hit, err := h.students.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, students)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.CreateStudentRequest true "Student payload"
// @Success 201 {object} models.Student
// @Failure 400 {object} appErrors.Error
// @Router /create [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req models.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Export godoc
// @Summary Export roster
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv (default), pdf or xlsx"
// @Param cohort query string false "Cohort"
// @Param course query string false "Course label"
// @Success 200 {file} file
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	result, err := h.exporter.Export(c.Request.Context(), filterFromQuery(c), c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Payload)
}

// Catalog godoc
// @Summary Enrollment catalog
// @Tags Students
// @Produce json
// @Success 200 {object} models.Catalog
// @Router /catalog [get]
func (h *StudentHandler) Catalog(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.students.Catalog())
}
