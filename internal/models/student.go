package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are the forms accepted for dateJoined and lastLogin. Legacy payloads carry
// date-only values.
var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Student represents a learner on the roster.
type Student struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Cohort     string     `json:"cohort"`
	Courses    []string   `json:"courses"`
	DateJoined time.Time  `json:"dateJoined"`
	LastLogin  *time.Time `json:"lastLogin"`
}

// UnmarshalJSON decodes a student whose timestamps are RFC 3339 or date-only. An empty or null
// lastLogin means the student never logged in.
func (s *Student) UnmarshalJSON(data []byte) error {
	type plain Student
	aux := struct {
		*plain
		DateJoined string  `json:"dateJoined"`
		LastLogin  *string `json:"lastLogin"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.DateJoined = time.Time{}
	if aux.DateJoined != "" {
		joined, err := ParseTimestamp(aux.DateJoined)
		if err != nil {
			return fmt.Errorf("dateJoined: %w", err)
		}
		s.DateJoined = joined
	}

	s.LastLogin = nil
	if aux.LastLogin != nil && *aux.LastLogin != "" {
		last, err := ParseTimestamp(*aux.LastLogin)
		if err != nil {
			return fmt.Errorf("lastLogin: %w", err)
		}
		s.LastLogin = &last
	}
	return nil
}

// ParseTimestamp parses value using the first matching layout. Date-only values are midnight UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

// HasCourse reports whether course is one of the student's course labels.
func (s Student) HasCourse(course string) bool {
	for _, c := range s.Courses {
		if c == course {
			return true
		}
	}
	return false
}

// StudentFilter narrows a roster by cohort and course. Empty fields place no constraint.
type StudentFilter struct {
	Cohort string `json:"cohort,omitempty"`
	Course string `json:"course,omitempty"`
}

// Complete reports whether both dimensions are set. The API only filters server-side in that case.
func (f StudentFilter) Complete() bool {
	return f.Cohort != "" && f.Course != ""
}

// Empty reports whether neither dimension is set.
func (f StudentFilter) Empty() bool {
	return f.Cohort == "" && f.Course == ""
}

// Matches applies the filter to a single student.
func (f StudentFilter) Matches(s Student) bool {
	if f.Cohort != "" && s.Cohort != f.Cohort {
		return false
	}
	if f.Course != "" && !s.HasCourse(f.Course) {
		return false
	}
	return true
}

// Normalize trims surrounding whitespace from both dimensions.
func (f StudentFilter) Normalize() StudentFilter {
	return StudentFilter{Cohort: strings.TrimSpace(f.Cohort), Course: strings.TrimSpace(f.Course)}
}

// CreateStudentRequest is the payload accepted when enrolling a student.
// ID, join date and last login are assigned by the server.
type CreateStudentRequest struct {
	Name    string   `json:"name" validate:"required"`
	Cohort  string   `json:"cohort" validate:"required"`
	Courses []string `json:"courses" validate:"required,min=1,dive,required"`
}

// Normalize trims the name, cohort and every course label, dropping blank and duplicate courses.
func (r CreateStudentRequest) Normalize() CreateStudentRequest {
	out := CreateStudentRequest{
		Name:    strings.TrimSpace(r.Name),
		Cohort:  strings.TrimSpace(r.Cohort),
		Courses: make([]string, 0, len(r.Courses)),
	}
	seen := make(map[string]struct{}, len(r.Courses))
	for _, course := range r.Courses {
		course = strings.TrimSpace(course)
		if course == "" {
			continue
		}
		if _, dup := seen[course]; dup {
			continue
		}
		seen[course] = struct{}{}
		out.Courses = append(out.Courses, course)
	}
	return out
}
