package models

import "strings"

// Catalog lists the cohorts and classes an administrator can enrol students into.
type Catalog struct {
	Cohorts []string       `json:"cohorts"`
	Classes []CatalogClass `json:"classes"`
}

// CatalogClass is a class/grade with the subjects it offers.
type CatalogClass struct {
	Name     string   `json:"name"`
	Subjects []string `json:"subjects"`
}

var defaultSubjects = []string{"Mathematics", "Science", "English", "Social Studies", "Hindi"}

// DefaultCatalog returns the built-in cohorts and CBSE classes.
func DefaultCatalog() Catalog {
	return Catalog{
		Cohorts: []string{"AY 2024-25", "AY 2023-24"},
		Classes: []CatalogClass{
			{Name: "CBSE 9", Subjects: append([]string(nil), defaultSubjects...)},
			{Name: "CBSE 10", Subjects: append([]string(nil), defaultSubjects...)},
		},
	}
}

// CourseLabel joins a class and subject into the label stored on student records.
func CourseLabel(class, subject string) string {
	return strings.TrimSpace(class) + " " + strings.TrimSpace(subject)
}

// Courses expands the catalog into every course label it offers.
func (c Catalog) Courses() []string {
	var labels []string
	for _, class := range c.Classes {
		for _, subject := range class.Subjects {
			labels = append(labels, CourseLabel(class.Name, subject))
		}
	}
	return labels
}

// HasCohort reports whether cohort is listed in the catalog.
func (c Catalog) HasCohort(cohort string) bool {
	for _, known := range c.Cohorts {
		if known == cohort {
			return true
		}
	}
	return false
}
