package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/student-roster/internal/models"
	appErrors "github.com/noah-isme/student-roster/pkg/errors"
)

func newExportServiceForTest(repo *mockStudentRepo) *ExportService {
	svc := NewExportService(NewStudentService(repo, nil, nil, nil, zap.NewNop()), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportServiceCSVPartialFilter(t *testing.T) {
	svc := newExportServiceForTest(seededRepo())

	result, err := svc.Export(context.Background(), models.StudentFilter{Cohort: "AY 2023-24"}, "CSV")
	require.NoError(t, err)

	assert.Equal(t, "roster_AY-2023-24_20240501_120000.csv", result.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", result.ContentType)
	assert.Equal(t, 1, result.Rows)
	lines := strings.Split(strings.TrimSpace(string(result.Payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Student Name,Cohort,Courses,Date Joined,Last Login", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Ravi,AY 2023-24,CBSE 10 Science,"))
	assert.True(t, strings.HasSuffix(lines[1], ",Never"))
}

func TestExportServicePDF(t *testing.T) {
	svc := newExportServiceForTest(seededRepo())

	result, err := svc.Export(context.Background(), models.StudentFilter{}, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, 2, result.Rows)
	assert.True(t, bytes.HasPrefix(result.Payload, []byte("%PDF")))
	assert.Equal(t, "roster_all_20240501_120000.pdf", result.Filename)
}

func TestExportServiceXLSX(t *testing.T) {
	svc := newExportServiceForTest(seededRepo())

	result, err := svc.Export(context.Background(), models.StudentFilter{Course: "CBSE 9 Mathematics"}, "xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)
	assert.Equal(t, "roster_CBSE-9-Mathematics_20240501_120000.xlsx", result.Filename)
	assert.True(t, bytes.HasPrefix(result.Payload, []byte("PK")))
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := newExportServiceForTest(seededRepo())

	_, err := svc.Export(context.Background(), models.StudentFilter{}, "docx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUnsupportedFormat))
}

func TestExportServiceListError(t *testing.T) {
	svc := newExportServiceForTest(&mockStudentRepo{err: errors.New("db down")})

	_, err := svc.Export(context.Background(), models.StudentFilter{}, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
