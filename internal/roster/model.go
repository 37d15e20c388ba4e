// Package roster holds the client-side view of the student roster: the last fetched list, the
// active filter and the subset of students it selects.
package roster

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/student-roster/internal/models"
)

// Filter selects students by cohort and course. Empty fields place no constraint.
type Filter = models.StudentFilter

// StudentService is the remote backend the model reads from and writes to.
type StudentService interface {
	List(ctx context.Context, filter Filter) ([]models.Student, error)
	Create(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error)
}

// State is a snapshot of what presentation renders.
type State struct {
	Visible   []models.Student
	Filter    Filter
	Loading   bool
	Err       string
	CreateErr string
}

// Model is the single source of truth for the roster shown to the user. It is safe for
// concurrent use.
type Model struct {
	svc    StudentService
	logger *zap.Logger

	mu        sync.Mutex
	all       []models.Student
	visible   []models.Student
	filter    Filter
	requested Filter
	loading   bool
	loadErr   string
	createErr string
	seq       uint64
	cancel    context.CancelFunc
	listeners []func(State)
}

// New returns an empty model backed by svc.
func New(svc StudentService, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{
		svc:     svc,
		logger:  logger,
		all:     []models.Student{},
		visible: []models.Student{},
	}
}

// Subscribe registers fn to receive the state after every transition.
func (m *Model) Subscribe(fn func(State)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// State returns a copy of the current state.
func (m *Model) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// All returns a copy of every student last fetched or created.
func (m *Model) All() []models.Student {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneStudents(m.all)
}

// Load replaces the roster with the service's response and makes filter the active filter. The
// service is asked to filter only when both cohort and course are set. On failure the roster,
// filter and visible students keep their prior values and only the error is recorded. A newer
// Load cancels this one, and its response is then discarded with ErrSuperseded.
func (m *Model) Load(ctx context.Context, filter Filter) error {
	filter = filter.Normalize()

	m.mu.Lock()
	m.seq++
	seq := m.seq
	if m.cancel != nil {
		m.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.cancel = cancel
	m.requested = filter
	m.loading = true
	m.publishAndUnlock()

	query := Filter{}
	if filter.Complete() {
		query = filter
	}
	students, err := m.svc.List(loadCtx, query)

	m.mu.Lock()
	if seq != m.seq {
		m.mu.Unlock()
		m.logger.Debug("discarding superseded roster load", zap.Uint64("seq", seq))
		return ErrSuperseded
	}
	m.cancel = nil
	m.loading = false
	if err != nil {
		m.loadErr = LoadFailedMessage
		m.publishAndUnlock()
		m.logger.Error("failed to load students", zap.Error(err),
			zap.String("cohort", filter.Cohort), zap.String("course", filter.Course))
		return asRemoteError(OpLoad, err)
	}
	m.all = cloneStudents(students)
	m.filter = m.requested
	m.visible = derive(m.all, m.filter)
	m.loadErr = ""
	m.publishAndUnlock()
	return nil
}

// Retry reissues Load with the filter of the last Load or SetFilter, including a failed Load.
func (m *Model) Retry(ctx context.Context) error {
	m.mu.Lock()
	filter := m.requested
	m.mu.Unlock()
	return m.Load(ctx, filter)
}

// Create validates candidate, submits it and appends the created record to the roster without
// refetching. The roster is left unchanged on any failure.
func (m *Model) Create(ctx context.Context, candidate models.CreateStudentRequest) (*models.Student, error) {
	candidate = candidate.Normalize()
	if err := Validate(candidate); err != nil {
		return nil, err
	}

	student, err := m.svc.Create(ctx, candidate)
	if err == nil && student == nil {
		err = &RemoteError{Op: OpCreate, Message: "empty response"}
	}
	if err != nil {
		remote := asRemoteError(OpCreate, err)
		m.mu.Lock()
		m.createErr = createMessage(remote)
		m.publishAndUnlock()
		m.logger.Error("failed to create student", zap.Error(err), zap.String("name", candidate.Name))
		return nil, remote
	}

	created := cloneStudent(*student)
	m.mu.Lock()
	m.all = append(m.all, created)
	m.visible = derive(m.all, m.filter)
	m.createErr = ""
	m.publishAndUnlock()
	return &created, nil
}

// SetFilter updates the filter and recomputes the visible students from the local roster.
// It never calls the service.
func (m *Model) SetFilter(cohort, course string) {
	m.mu.Lock()
	m.filter = Filter{Cohort: cohort, Course: course}.Normalize()
	m.requested = m.filter
	m.visible = derive(m.all, m.filter)
	m.publishAndUnlock()
}

// Validate applies the presence checks a candidate must pass before submission.
func Validate(candidate models.CreateStudentRequest) error {
	switch {
	case strings.TrimSpace(candidate.Name) == "":
		return &ValidationError{Field: "name", Message: "name is required"}
	case strings.TrimSpace(candidate.Cohort) == "":
		return &ValidationError{Field: "cohort", Message: "cohort is required"}
	case len(candidate.Normalize().Courses) == 0:
		return &ValidationError{Field: "courses", Message: "at least one course is required"}
	}
	return nil
}

// publishAndUnlock must be called with mu held. It releases mu and then notifies listeners.
func (m *Model) publishAndUnlock() {
	state := m.snapshotLocked()
	listeners := append([]func(State){}, m.listeners...)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
}

func (m *Model) snapshotLocked() State {
	return State{
		Visible:   cloneStudents(m.visible),
		Filter:    m.filter,
		Loading:   m.loading,
		Err:       m.loadErr,
		CreateErr: m.createErr,
	}
}

func derive(all []models.Student, filter Filter) []models.Student {
	visible := make([]models.Student, 0, len(all))
	for _, s := range all {
		if filter.Matches(s) {
			visible = append(visible, s)
		}
	}
	return visible
}

func createMessage(err *RemoteError) string {
	if err.Message != "" {
		return err.Message
	}
	return CreateFailedMessage
}

func cloneStudents(in []models.Student) []models.Student {
	out := make([]models.Student, len(in))
	for i, s := range in {
		out[i] = cloneStudent(s)
	}
	return out
}

func cloneStudent(s models.Student) models.Student {
	if s.Courses != nil {
		s.Courses = append(make([]string, 0, len(s.Courses)), s.Courses...)
	}
	if s.LastLogin != nil {
		t := *s.LastLogin
		s.LastLogin = &t
	}
	return s
}
