package models

import (
	"strings"
	"time"
)

// DisplayDateLayout renders dates as "Jan 2, 2006".
const DisplayDateLayout = "Jan 2, 2006"

// NeverLoggedIn is shown for students without a recorded login.
const NeverLoggedIn = "Never"

// DisplayDate formats t for tables, or "" for the zero time.
func DisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}

// LastLoginLabel renders LastLogin, or "Never" when absent.
func (s Student) LastLoginLabel() string {
	if s.LastLogin == nil || s.LastLogin.IsZero() {
		return NeverLoggedIn
	}
	return DisplayDate(*s.LastLogin)
}

// CoursesLabel joins the course labels for display.
func (s Student) CoursesLabel() string {
	return strings.Join(s.Courses, ", ")
}

// RosterHeaders are the column titles of the roster table.
var RosterHeaders = []string{"Student Name", "Cohort", "Courses", "Date Joined", "Last Login"}

// RosterRow renders a student as a roster table row matching RosterHeaders.
func (s Student) RosterRow() []string {
	return []string{s.Name, s.Cohort, s.CoursesLabel(), DisplayDate(s.DateJoined), s.LastLoginLabel()}
}
