package dto

import (
	"time"

	"github.com/classforge/timetable-api/internal/scheduler"
)

// CourseRequest declares one course's weekly teaching demand.
type CourseRequest struct {
	Code            string `json:"code" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Teacher         string `json:"teacher" validate:"required"`
	LecturesPerWeek int    `json:"lectures_per_week" validate:"required,min=1"`
	Type            string `json:"type" validate:"omitempty,oneof=lecture lab"`
	LabDuration     int    `json:"lab_duration" validate:"omitempty,min=1,max=8"`
}

// ResourcesRequest counts the rooms available to the institution. A wholly
// omitted block falls back to the institution defaults.
type ResourcesRequest struct {
	Classrooms int `json:"classrooms" validate:"omitempty,min=1"`
	Labs       int `json:"labs" validate:"min=0"`
}

// TimetableRequest is the full generation payload for one institution.
type TimetableRequest struct {
	InstitutionID     string           `json:"institution_id" validate:"required"`
	WorkingDays       []string         `json:"working_days" validate:"omitempty,min=1,dive,required"`
	LectureDuration   int              `json:"lecture_duration" validate:"omitempty,oneof=30 45 60 90 120"`
	StartTime         string           `json:"start_time" validate:"omitempty"`
	EndTime           string           `json:"end_time" validate:"omitempty"`
	LunchStart        string           `json:"lunch_start" validate:"omitempty"`
	LunchEnd          string           `json:"lunch_end" validate:"omitempty"`
	Courses           []CourseRequest  `json:"courses" validate:"required,min=1,dive"`
	Resources         ResourcesRequest `json:"resources"`
	CustomConstraints []string         `json:"custom_constraints"`
}

// ValidationResult reports feasibility without starting a search.
type ValidationResult struct {
	InstitutionID string   `json:"institution_id"`
	IsValid       bool     `json:"is_valid"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
}

// TimetableResponse is the generated schedule with its quality metadata.
type TimetableResponse struct {
	RunID              string              `json:"run_id"`
	InstitutionID      string              `json:"institution_id"`
	Timetable          scheduler.Timetable `json:"timetable"`
	FitnessScore       float64             `json:"fitness_score"`
	GenerationCount    int                 `json:"generation_count"`
	Outcome            scheduler.Outcome   `json:"outcome"`
	QualityLabel       string              `json:"quality_label"`
	Summary            scheduler.Summary   `json:"summary"`
	ConvergenceHistory []float64           `json:"convergence_history"`
	Timestamp          time.Time           `json:"timestamp"`
}
