package scheduler

import (
	"fmt"
	"strings"
)

// buildSummary derives the user-facing statistics from the winning candidate.
// Counts come from the decoded timetable (what the user will actually see),
// while the violation list comes from a re-scan of the raw genes.
func (s *Scheduler) buildSummary(best chromosome, table Timetable) Summary {
	summary := Summary{
		CoursesCompletion:    make(map[string]CourseCompletion, len(s.courses)),
		TeacherWorkload:      make(map[string]int),
		RoomUtilization:      make(map[string]int),
		ConstraintViolations: s.evaluator.violations(best),
		Recommendations:      []string{},
		AdvisoryNotes:        s.rules.Notes,
	}

	scheduled := make(map[string]int, len(s.courses))
	for _, day := range s.cfg.WorkingDays {
		for _, t := range s.grid.Times {
			occ := table[day][t]
			if occ == nil {
				continue
			}

			summary.TeacherWorkload[occ.Teacher]++
			summary.RoomUtilization[occ.Room]++

			// A lab block counts as one session, tallied at its first part.
			if occ.SessionPart == "" || strings.HasPrefix(occ.SessionPart, "1/") {
				scheduled[occ.CourseCode]++
				summary.TotalClassesScheduled++
			}
		}
	}

	labShortfall := false
	var completionSum float64
	for _, course := range s.courses {
		placed := scheduled[course.Code]
		completion := CourseCompletion{
			Scheduled: placed,
			Required:  course.LecturesPerWeek,
		}
		if course.LecturesPerWeek > 0 {
			completion.CompletionRate = float64(placed) / float64(course.LecturesPerWeek) * 100
		}
		summary.CoursesCompletion[course.Code] = completion
		completionSum += completion.CompletionRate

		if placed < course.LecturesPerWeek {
			summary.Recommendations = append(summary.Recommendations,
				fmt.Sprintf("course %s placed %d of %d weekly sessions; consider more rooms or fewer constraints",
					course.Code, placed, course.LecturesPerWeek))
			if course.Type == CourseTypeLab {
				labShortfall = true
			}
		}
	}

	if len(s.courses) > 0 && completionSum/float64(len(s.courses)) < lowCompletionThreshold {
		summary.Recommendations = append(summary.Recommendations,
			"overall completion is low; extend the working day or reduce weekly session counts")
	}
	for teacher, load := range summary.TeacherWorkload {
		if load > heavyWeeklyLoad {
			summary.Recommendations = append(summary.Recommendations,
				fmt.Sprintf("teacher %s carries %d weekly slots; consider rebalancing courses", teacher, load))
		}
	}
	if labShortfall && s.codec.res.Labs > 0 {
		summary.Recommendations = append(summary.Recommendations,
			"lab sessions are competing for rooms; adding one more lab room would relieve the contention")
	}
	if best.hardViolations > 0 {
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("%d conflicts remain unresolved; rerun with more generations or relaxed constraints",
				best.hardViolations))
	}

	return summary
}

// Recommendation thresholds: average completion below this percentage or a
// weekly teacher load above this count produce advice.
const (
	lowCompletionThreshold = 80.0
	heavyWeeklyLoad        = 25
)
