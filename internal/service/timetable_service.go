package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classforge/timetable-api/internal/dto"
	"github.com/classforge/timetable-api/internal/scheduler"
	"github.com/classforge/timetable-api/pkg/config"
	appErrors "github.com/classforge/timetable-api/pkg/errors"
	"github.com/classforge/timetable-api/pkg/export"
)

// Institution defaults applied when the request omits timing configuration.
const (
	defaultLectureDuration = 45
	defaultStartTime       = "09:15"
	defaultEndTime         = "16:55"
	defaultLunchStart      = "12:30"
	defaultLunchEnd        = "13:30"
	defaultClassrooms      = 10
	defaultLabs            = 5
)

var defaultWorkingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// TimetableService orchestrates validation, generation, retrieval and export
// of weekly timetables.
type TimetableService struct {
	validate  *validator.Validate
	store     ResultStore
	metrics   *MetricsService
	logger    *zap.Logger
	scheduler config.SchedulerConfig
	fitness   config.FitnessConfig
	exportCfg config.ExportConfig
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// NewTimetableService wires the service dependencies.
func NewTimetableService(cfg *config.Config, store ResultStore, metrics *MetricsService, logger *zap.Logger) *TimetableService {
	return &TimetableService{
		validate:  validator.New(),
		store:     store,
		metrics:   metrics,
		logger:    logger,
		scheduler: cfg.Scheduler,
		fitness:   cfg.Fitness,
		exportCfg: cfg.Export,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// Validate checks a request's feasibility without running the search.
func (s *TimetableService) Validate(_ context.Context, req dto.TimetableRequest) (*dto.ValidationResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
	}

	cfg, courses, res := s.buildRunInput(req)
	report := scheduler.Validate(cfg, courses, res, req.CustomConstraints)

	return &dto.ValidationResult{
		InstitutionID: req.InstitutionID,
		IsValid:       report.IsValid,
		Errors:        report.Errors,
		Warnings:      report.Warnings,
	}, nil
}

// Generate runs the genetic search and stores the winning timetable.
func (s *TimetableService) Generate(ctx context.Context, req dto.TimetableRequest) (*dto.TimetableResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
	}

	cfg, courses, res := s.buildRunInput(req)

	run, err := scheduler.New(cfg, courses, res, req.CustomConstraints, scheduler.Options{
		PopulationSize:  s.scheduler.PopulationSize,
		MaxGenerations:  s.scheduler.MaxGenerations,
		StagnationLimit: s.scheduler.StagnationLimit,
		MutationRate:    s.scheduler.MutationRate,
		CrossoverRate:   s.scheduler.CrossoverRate,
		EliteFraction:   s.scheduler.EliteFraction,
		TournamentSize:  s.scheduler.TournamentSize,
		EvalWorkers:     s.scheduler.EvalWorkers,
		Weights:         s.weights(),
		Logger:          s.logger,
	})
	if err != nil {
		return nil, err
	}

	runCtx := ctx
	if s.scheduler.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.scheduler.RunTimeout)
		defer cancel()
	}

	started := time.Now()
	result, err := run.Run(runCtx)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveSchedulerRun(string(result.Outcome), result.Generations, result.Fitness, time.Since(started))

	response := &dto.TimetableResponse{
		RunID:              uuid.NewString(),
		InstitutionID:      req.InstitutionID,
		Timetable:          result.Timetable,
		FitnessScore:       result.Fitness,
		GenerationCount:    result.Generations,
		Outcome:            result.Outcome,
		QualityLabel:       s.qualityLabel(result.Fitness),
		Summary:            result.Summary,
		ConvergenceHistory: result.ConvergenceHistory,
		Timestamp:          time.Now().UTC(),
	}

	if err := s.store.Save(ctx, response); err != nil {
		// The schedule was computed; losing the cached copy only breaks the
		// later GET, so surface the failure instead of hiding it.
		return nil, err
	}

	s.logger.Info("timetable generated",
		zap.String("institution_id", req.InstitutionID),
		zap.String("run_id", response.RunID),
		zap.String("outcome", string(result.Outcome)),
		zap.Float64("fitness", result.Fitness),
		zap.Int("generations", result.Generations))

	return response, nil
}

// Get returns the most recent stored timetable for the institution.
func (s *TimetableService) Get(ctx context.Context, institutionID string) (*dto.TimetableResponse, error) {
	result, err := s.store.Get(ctx, institutionID)
	s.metrics.RecordStoreLookup(err == nil)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Export renders the stored timetable as CSV or PDF.
func (s *TimetableService) Export(ctx context.Context, institutionID, format string) ([]byte, string, string, error) {
	result, err := s.Get(ctx, institutionID)
	if err != nil {
		return nil, "", "", err
	}

	data := buildDataset(result.Timetable)

	switch strings.ToLower(format) {
	case "csv":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return payload, "text/csv", fmt.Sprintf("timetable-%s.csv", institutionID), nil
	case "pdf":
		payload, err := s.pdf.Render(data, s.exportCfg.Title)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return payload, "application/pdf", fmt.Sprintf("timetable-%s.pdf", institutionID), nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *TimetableService) buildRunInput(req dto.TimetableRequest) (scheduler.Config, []scheduler.Course, scheduler.Resources) {
	cfg := scheduler.Config{
		WorkingDays:     req.WorkingDays,
		LectureDuration: req.LectureDuration,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		LunchStart:      req.LunchStart,
		LunchEnd:        req.LunchEnd,
	}
	if len(cfg.WorkingDays) == 0 {
		cfg.WorkingDays = defaultWorkingDays
	}
	if cfg.LectureDuration == 0 {
		cfg.LectureDuration = defaultLectureDuration
	}
	if cfg.StartTime == "" {
		cfg.StartTime = defaultStartTime
	}
	if cfg.EndTime == "" {
		cfg.EndTime = defaultEndTime
	}
	if cfg.LunchStart == "" {
		cfg.LunchStart = defaultLunchStart
	}
	if cfg.LunchEnd == "" {
		cfg.LunchEnd = defaultLunchEnd
	}

	courses := make([]scheduler.Course, 0, len(req.Courses))
	for _, c := range req.Courses {
		courseType := scheduler.CourseType(c.Type)
		if courseType == "" {
			courseType = scheduler.CourseTypeLecture
		}
		courses = append(courses, scheduler.Course{
			Code:            c.Code,
			Name:            c.Name,
			Teacher:         c.Teacher,
			LecturesPerWeek: c.LecturesPerWeek,
			Type:            courseType,
			LabDuration:     c.LabDuration,
		})
	}

	res := scheduler.Resources{
		Classrooms: req.Resources.Classrooms,
		Labs:       req.Resources.Labs,
	}
	// An omitted resources block means "use the institution defaults"; an
	// explicit classroom count with labs at zero stays exactly as given.
	if req.Resources == (dto.ResourcesRequest{}) {
		res = scheduler.Resources{Classrooms: defaultClassrooms, Labs: defaultLabs}
	}

	return cfg, courses, res
}

func (s *TimetableService) weights() scheduler.Weights {
	return scheduler.Weights{
		BaseScore:          s.fitness.BaseScore,
		HardPenalty:        s.fitness.HardPenalty,
		UnavailablePenalty: s.fitness.UnavailablePenalty,
		SpreadReward:       s.fitness.SpreadReward,
		ClusterPenalty:     s.fitness.ClusterPenalty,
		DailyLoadCap:       s.fitness.DailyLoadCap,
		DailyLoadPenalty:   s.fitness.DailyLoadPenalty,
	}
}

func (s *TimetableService) qualityLabel(fitness float64) string {
	switch {
	case fitness >= s.fitness.ExcellentThreshold:
		return "excellent"
	case fitness >= s.fitness.GoodThreshold:
		return "good"
	default:
		return "needs review"
	}
}

// weekdayRank orders timetable columns Monday through Sunday regardless of
// map iteration order.
var weekdayRank = map[string]int{
	"Monday": 0, "Tuesday": 1, "Wednesday": 2, "Thursday": 3,
	"Friday": 4, "Saturday": 5, "Sunday": 6,
}

// buildDataset flattens a timetable into one row per slot time with one
// column per working day.
func buildDataset(table scheduler.Timetable) export.Dataset {
	days := make([]string, 0, len(table))
	for day := range table {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		ri, iOK := weekdayRank[days[i]]
		rj, jOK := weekdayRank[days[j]]
		if iOK && jOK {
			return ri < rj
		}
		if iOK != jOK {
			return iOK
		}
		return days[i] < days[j]
	})

	timeSet := make(map[string]bool)
	for _, slots := range table {
		for t := range slots {
			timeSet[t] = true
		}
	}
	times := make([]string, 0, len(timeSet))
	for t := range timeSet {
		times = append(times, t)
	}
	sort.Strings(times)

	data := export.NewDataset(append([]string{"Time"}, days...)...)
	for _, t := range times {
		row := map[string]string{"Time": t}
		for _, day := range days {
			if occ := table[day][t]; occ != nil {
				cell := fmt.Sprintf("%s (%s)", occ.CourseCode, occ.Room)
				if occ.SessionPart != "" {
					cell = fmt.Sprintf("%s (%s) [%s]", occ.CourseCode, occ.Room, occ.SessionPart)
				}
				row[day] = cell
			}
		}
		data.AddRow(row)
	}

	return data
}
