package scheduler

import (
	"strings"
)

// TeacherUnavailability declares that a teacher cannot be scheduled on a day.
type TeacherUnavailability struct {
	Teacher string
	Day     string
}

// ConstraintSet is the structured form of the free-text constraint list.
// Unavailability rules are enforced by the evaluator; everything else is
// carried through as an advisory note on the summary.
type ConstraintSet struct {
	Unavailability []TeacherUnavailability
	Notes          []string
}

var weekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

const unavailabilityMarker = "not available on"

// ParseConstraints recognizes the "<teacher> not available on <day>" pattern,
// matched case-insensitively. Lines that do not fit become advisory notes.
func ParseConstraints(raw []string) ConstraintSet {
	set := ConstraintSet{}

	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		rule, ok := parseUnavailability(line)
		if !ok {
			set.Notes = append(set.Notes, line)
			continue
		}
		set.Unavailability = append(set.Unavailability, rule)
	}

	return set
}

func parseUnavailability(line string) (TeacherUnavailability, bool) {
	lower := strings.ToLower(line)
	idx := strings.Index(lower, unavailabilityMarker)
	if idx < 0 {
		return TeacherUnavailability{}, false
	}

	teacher := strings.TrimSpace(line[:idx])
	teacher = strings.TrimSuffix(teacher, " is")
	teacher = strings.TrimSpace(teacher)
	if teacher == "" {
		return TeacherUnavailability{}, false
	}

	rest := lower[idx+len(unavailabilityMarker):]
	for _, day := range weekdayNames {
		if strings.Contains(rest, strings.ToLower(day)) {
			return TeacherUnavailability{Teacher: teacher, Day: day}, true
		}
	}

	return TeacherUnavailability{}, false
}

// UnavailableOn reports whether the set forbids the teacher on the given day.
func (s ConstraintSet) UnavailableOn(teacher, day string) bool {
	for _, rule := range s.Unavailability {
		if strings.EqualFold(rule.Teacher, teacher) && strings.EqualFold(rule.Day, day) {
			return true
		}
	}
	return false
}
