package scheduler

// CourseType distinguishes single-slot lectures from multi-slot lab blocks.
type CourseType string

const (
	CourseTypeLecture CourseType = "lecture"
	CourseTypeLab     CourseType = "lab"
)

// Course describes one teaching unit of the weekly timetable.
type Course struct {
	Code            string     `json:"code"`
	Name            string     `json:"name"`
	Teacher         string     `json:"teacher"`
	LecturesPerWeek int        `json:"lectures_per_week"`
	Type            CourseType `json:"type"`
	// LabDuration is the number of contiguous slots one lab session spans.
	// Meaningful only for lab courses; zero is treated as one.
	LabDuration int `json:"lab_duration,omitempty"`
}

// SessionSpan returns how many consecutive slots a single session occupies.
func (c Course) SessionSpan() int {
	if c.Type == CourseTypeLab && c.LabDuration > 1 {
		return c.LabDuration
	}
	return 1
}

// Config is the immutable institution configuration for one scheduling run.
type Config struct {
	WorkingDays     []string `json:"working_days"`
	LectureDuration int      `json:"lecture_duration"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	LunchStart      string   `json:"lunch_start"`
	LunchEnd        string   `json:"lunch_end"`
}

// Resources counts the room pools sessions can be assigned to.
type Resources struct {
	Classrooms int `json:"classrooms"`
	Labs       int `json:"labs"`
}

// Occupant is one placed session part inside the decoded timetable.
// TotalDuration is the slot count of the whole block, not minutes.
type Occupant struct {
	CourseCode    string     `json:"course_code"`
	CourseName    string     `json:"course_name"`
	Teacher       string     `json:"teacher"`
	Room          string     `json:"room"`
	Type          CourseType `json:"type"`
	IsConsecutive bool       `json:"is_consecutive,omitempty"`
	SessionPart   string     `json:"session_part,omitempty"`
	TotalDuration int        `json:"total_duration,omitempty"`
}

// Timetable maps working day -> slot start time -> occupant (nil when free).
type Timetable map[string]map[string]*Occupant

// requirement is one schedulable session demand: a lecture occurrence or a
// lab block. Genes are indexed one-to-one against the requirement list.
type requirement struct {
	course     Course
	occurrence int
	span       int
}

// gene assigns one requirement to (day index, starting slot index, room index).
type gene struct {
	day  int
	slot int
	room int
}

// chromosome is one candidate timetable: a fixed-length gene sequence plus
// its cached score. Candidates are never mutated after scoring; breeding
// always produces fresh copies.
type chromosome struct {
	genes          []gene
	fitness        float64
	hardViolations int
}

func (c chromosome) clone() chromosome {
	genes := make([]gene, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness, hardViolations: c.hardViolations}
}

// Outcome tags the terminal state of a search run.
type Outcome string

const (
	// OutcomeOptimal means the best candidate has zero hard violations.
	OutcomeOptimal Outcome = "optimal"
	// OutcomeDegraded means the budget ran out before all hard violations
	// were resolved; the result still carries the best candidate found.
	OutcomeDegraded Outcome = "degraded"
)

// Result is the final product of a scheduling run. ConvergenceHistory holds
// the best-ever fitness after each bred generation, so it is monotonically
// non-decreasing.
type Result struct {
	Timetable          Timetable `json:"timetable"`
	Fitness            float64   `json:"fitness_score"`
	Generations        int       `json:"generation_count"`
	Outcome            Outcome   `json:"outcome"`
	Summary            Summary   `json:"summary"`
	ConvergenceHistory []float64 `json:"convergence_history"`
}

// CourseCompletion reports how much of a course's weekly demand was placed.
// CompletionRate is a percentage.
type CourseCompletion struct {
	Scheduled      int     `json:"scheduled"`
	Required       int     `json:"required"`
	CompletionRate float64 `json:"completion_rate"`
}

// Summary carries the user-facing statistics derived from the winning
// candidate.
type Summary struct {
	TotalClassesScheduled int                         `json:"total_classes_scheduled"`
	CoursesCompletion     map[string]CourseCompletion `json:"courses_completion"`
	TeacherWorkload       map[string]int              `json:"teacher_workload"`
	RoomUtilization       map[string]int              `json:"room_utilization"`
	ConstraintViolations  []string                    `json:"constraint_violations"`
	Recommendations       []string                    `json:"recommendations"`
	AdvisoryNotes         []string                    `json:"advisory_notes,omitempty"`
}

// ValidationReport is the outcome of the pre-search feasibility check.
type ValidationReport struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
