package schedule

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"grant-crm/internal/config"
	"grant-crm/internal/features/report"
)

var ErrNotFound = errors.New("report schedule not found")

type ScheduleService interface {
	SaveSchedule(ctx context.Context, schedule *ReportSchedule) error
	GetSchedule(ctx context.Context, id string) (*ReportSchedule, error)
	ListSchedules(ctx context.Context) ([]ReportSchedule, error)
	DeleteSchedule(ctx context.Context, id string) error
	RunNow(ctx context.Context, id string) (string, error)
	InitializeScheduler(ctx context.Context) error
	StopScheduler() error
}

type ScheduleServiceImpl struct {
	ScheduleRepo  ScheduleRepository
	ReportService report.ReportService
	Config        *config.Config
	Logger        *zap.Logger

	scheduler *cron.Cron
	entries   map[string]cron.EntryID
	mu        sync.Mutex
}

func NewScheduleService(scheduleRepo ScheduleRepository, reportService report.ReportService, cfg *config.Config, logger *zap.Logger) ScheduleService {
	return &ScheduleServiceImpl{
		ScheduleRepo:  scheduleRepo,
		ReportService: reportService,
		Config:        cfg,
		Logger:        logger,
		entries:       make(map[string]cron.EntryID),
	}
}

func (s *ScheduleServiceImpl) SaveSchedule(ctx context.Context, schedule *ReportSchedule) error {
	parsed, err := cron.ParseStandard(schedule.CronExpr)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	next := parsed.Next(time.Now())
	schedule.NextRunAt = &next

	if err := s.ScheduleRepo.Upsert(ctx, schedule); err != nil {
		return err
	}
	s.register(schedule)
	return nil
}

func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, id string) (*ReportSchedule, error) {
	schedule, err := s.ScheduleRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (s *ScheduleServiceImpl) ListSchedules(ctx context.Context) ([]ReportSchedule, error) {
	return s.ScheduleRepo.List(ctx)
}

func (s *ScheduleServiceImpl) DeleteSchedule(ctx context.Context, id string) error {
	err := s.ScheduleRepo.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	s.unregister(id)
	return nil
}

// RunNow executes one schedule immediately and returns the written file path.
func (s *ScheduleServiceImpl) RunNow(ctx context.Context, id string) (string, error) {
	schedule, err := s.GetSchedule(ctx, id)
	if err != nil {
		return "", err
	}
	return s.execute(ctx, schedule)
}

func (s *ScheduleServiceImpl) InitializeScheduler(ctx context.Context) error {
	s.mu.Lock()
	s.scheduler = cron.New()
	s.mu.Unlock()

	schedules, err := s.ScheduleRepo.List(ctx)
	if err != nil {
		return err
	}
	for i := range schedules {
		s.register(&schedules[i])
	}

	s.scheduler.Start()
	s.Logger.Info("report scheduler started", zap.Int("schedules", len(schedules)))
	return nil
}

func (s *ScheduleServiceImpl) StopScheduler() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	return nil
}

func (s *ScheduleServiceImpl) register(schedule *ReportSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler == nil {
		return
	}
	if entryID, ok := s.entries[schedule.ID.Hex()]; ok {
		s.scheduler.Remove(entryID)
		delete(s.entries, schedule.ID.Hex())
	}
	if !schedule.Active {
		return
	}

	id := schedule.ID.Hex()
	entryID, err := s.scheduler.AddFunc(schedule.CronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		current, err := s.ScheduleRepo.Get(ctx, id)
		if err != nil {
			s.Logger.Warn("scheduled report vanished", zap.String("schedule", id))
			return
		}
		if _, err := s.execute(ctx, current); err != nil {
			s.Logger.Error("scheduled report run failed", zap.String("schedule", id), zap.Error(err))
		}
	})
	if err != nil {
		s.Logger.Error("failed to register report schedule", zap.String("schedule", id), zap.Error(err))
		return
	}
	s.entries[id] = entryID
}

func (s *ScheduleServiceImpl) unregister(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler == nil {
		return
	}
	if entryID, ok := s.entries[id]; ok {
		s.scheduler.Remove(entryID)
		delete(s.entries, id)
	}
}

func (s *ScheduleServiceImpl) execute(ctx context.Context, schedule *ReportSchedule) (string, error) {
	artifact, err := s.ReportService.Run(ctx, report.Config{
		TemplateID: schedule.TemplateID,
		Name:       schedule.Name,
		Format:     schedule.Format,
	})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Config.FSPath, 0o755); err != nil {
		return "", err
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(s.Config.FSPath, stamp+"_"+artifact.Filename)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return "", err
	}

	_ = s.ScheduleRepo.TouchLastRun(ctx, schedule.ID, time.Now())
	s.Logger.Info("scheduled report written", zap.String("schedule", schedule.ID.Hex()), zap.String("path", path))
	return path, nil
}
