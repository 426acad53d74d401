package scheduler

import (
	"fmt"
	"strings"
)

// Teacher demand above this share of all schedulable slots triggers a load
// warning; generation still proceeds.
const teacherLoadWarningShare = 0.5

// Average daily sessions per teacher considered sane; beyond it we warn.
const maxSaneDailySessions = 6

// Capacity demand above this share of supply is flagged before it becomes
// outright infeasible.
const capacityWarningShare = 0.8

// Validate checks structural and capacity feasibility of a request before any
// search begins. It is a pure function of its inputs: hard errors block
// generation, warnings merely flag the response.
func Validate(cfg Config, courses []Course, res Resources, customConstraints []string) ValidationReport {
	report := ValidationReport{Errors: []string{}, Warnings: []string{}}

	if len(cfg.WorkingDays) == 0 {
		report.Errors = append(report.Errors, "at least one working day is required")
	}
	seen := make(map[string]bool, len(cfg.WorkingDays))
	for _, day := range cfg.WorkingDays {
		if seen[day] {
			report.Errors = append(report.Errors, fmt.Sprintf("working day %s listed more than once", day))
		}
		seen[day] = true
	}

	if len(courses) == 0 {
		report.Errors = append(report.Errors, "at least one course is required")
	}
	if res.Classrooms < 1 {
		report.Errors = append(report.Errors, "at least one classroom is required")
	}

	grid, err := NewSlotGrid(cfg)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		report.IsValid = false
		return report
	}
	report.Warnings = append(report.Warnings, grid.Warnings...)

	slotsPerDay := grid.SlotsPerDay()
	days := len(cfg.WorkingDays)

	lectureSlotDemand := 0
	labSlotDemand := 0
	teacherSessions := make(map[string]int)
	teacherOrder := make([]string, 0)

	for _, course := range courses {
		if course.LecturesPerWeek <= 0 {
			report.Errors = append(report.Errors,
				fmt.Sprintf("course %s must require at least one session per week", course.Code))
			continue
		}

		if _, ok := teacherSessions[course.Teacher]; !ok {
			teacherOrder = append(teacherOrder, course.Teacher)
		}
		teacherSessions[course.Teacher] += course.LecturesPerWeek * course.SessionSpan()

		switch course.Type {
		case CourseTypeLab:
			if res.Labs == 0 {
				report.Errors = append(report.Errors,
					fmt.Sprintf("course %s is a lab but no lab rooms are available", course.Code))
				continue
			}
			if course.SessionSpan() > slotsPerDay {
				report.Errors = append(report.Errors,
					fmt.Sprintf("course %s lab block (%d slots) does not fit a single day (%d slots)",
						course.Code, course.SessionSpan(), slotsPerDay))
				continue
			}
			labSlotDemand += course.LecturesPerWeek * course.SessionSpan()
		default:
			lectureSlotDemand += course.LecturesPerWeek
		}
	}

	if days > 0 && slotsPerDay > 0 {
		classroomSupply := res.Classrooms * slotsPerDay * days
		if lectureSlotDemand > classroomSupply {
			report.Errors = append(report.Errors,
				fmt.Sprintf("lecture demand (%d slots) exceeds classroom supply (%d slots)",
					lectureSlotDemand, classroomSupply))
		} else if float64(lectureSlotDemand) > capacityWarningShare*float64(classroomSupply) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("lecture demand (%d slots) is close to classroom supply (%d slots)",
					lectureSlotDemand, classroomSupply))
		}

		if res.Labs > 0 {
			labSupply := res.Labs * slotsPerDay * days
			if labSlotDemand > labSupply {
				report.Errors = append(report.Errors,
					fmt.Sprintf("lab demand (%d slots) exceeds lab supply (%d slots)", labSlotDemand, labSupply))
			} else if float64(labSlotDemand) > capacityWarningShare*float64(labSupply) {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("lab demand (%d slots) is close to lab supply (%d slots)", labSlotDemand, labSupply))
			}
		}

		totalSlots := slotsPerDay * days
		for _, teacher := range teacherOrder {
			load := teacherSessions[teacher]
			switch {
			case load > days*maxSaneDailySessions:
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("teacher %s averages more than %d sessions per day", teacher, maxSaneDailySessions))
			case float64(load) >= teacherLoadWarningShare*float64(totalSlots):
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("teacher %s is booked for %d of %d weekly slots; schedule may be tight", teacher, load, totalSlots))
			}
		}
	}

	rules := ParseConstraints(customConstraints)
	for _, rule := range rules.Unavailability {
		dayActive := false
		for _, day := range cfg.WorkingDays {
			if strings.EqualFold(day, rule.Day) {
				dayActive = true
				break
			}
		}
		if !dayActive {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("constraint for %s references %s, which is not a working day", rule.Teacher, rule.Day))
		}
	}

	report.IsValid = len(report.Errors) == 0
	return report
}
