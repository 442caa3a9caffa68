package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"couplesync/domain/models"
	"couplesync/domain/ports"
	"couplesync/domain/repositories"
	"couplesync/pkg/logger"
	"couplesync/pkg/scheduler"
)

const reminderJobID = "daily-task-reminder"

// ReminderService ส่งสรุป task ค้างประจำวันผ่าน notifier
// รันตาม cron expression จาก config
type ReminderService struct {
	coupleRepo repositories.CoupleRepository
	taskRepo   repositories.TaskRepository
	notifier   ports.NotifierPort
	scheduler  scheduler.EventScheduler
	cronExpr   string
}

func NewReminderService(
	coupleRepo repositories.CoupleRepository,
	taskRepo repositories.TaskRepository,
	notifier ports.NotifierPort,
	sched scheduler.EventScheduler,
	cronExpr string,
) *ReminderService {
	return &ReminderService{
		coupleRepo: coupleRepo,
		taskRepo:   taskRepo,
		notifier:   notifier,
		scheduler:  sched,
		cronExpr:   cronExpr,
	}
}

// Schedule ลงทะเบียน job กับ scheduler - ข้ามถ้า notifier ปิดอยู่
func (s *ReminderService) Schedule() error {
	if s.notifier == nil || !s.notifier.IsEnabled() {
		logger.Info("Task reminder disabled - notifier not configured")
		return nil
	}

	if err := s.scheduler.AddJob(reminderJobID, s.cronExpr, s.runOnce); err != nil {
		return fmt.Errorf("failed to schedule task reminder: %w", err)
	}

	logger.Info("Task reminder scheduled", "cron", s.cronExpr)
	return nil
}

func (s *ReminderService) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	couples, err := s.coupleRepo.ListAll(ctx)
	if err != nil {
		logger.Error("Reminder run failed to list couples", "error", err)
		return
	}

	sent := 0
	for _, couple := range couples {
		if s.remindCouple(ctx, couple) {
			sent++
		}
	}

	logger.Info("Reminder run finished", "couples", len(couples), "reminders_sent", sent)
}

func (s *ReminderService) remindCouple(ctx context.Context, couple *models.Couple) bool {
	pending, err := s.taskRepo.CountIncompleteByCoupleID(ctx, couple.ID)
	if err != nil {
		logger.Warn("Reminder failed to count tasks", "couple_id", couple.ID, "error", err)
		return false
	}
	if pending == 0 {
		return false
	}

	highPriority, err := s.taskRepo.ListIncompleteByPriority(ctx, couple.ID, models.PriorityHigh)
	if err != nil {
		logger.Warn("Reminder failed to list high priority tasks", "couple_id", couple.ID, "error", err)
		highPriority = nil
	}

	titles := make([]string, 0, len(highPriority))
	for _, task := range highPriority {
		titles = append(titles, task.Title)
	}

	if err := s.notifier.SendTaskReminder(ctx, coupleLabel(couple), int(pending), titles); err != nil {
		logger.Warn("Reminder failed to send", "couple_id", couple.ID, "error", err)
		return false
	}

	return true
}

// coupleLabel สร้างชื่อ couple จาก display name ของทั้งคู่
func coupleLabel(couple *models.Couple) string {
	name1 := couple.Partner1.DisplayName
	if name1 == "" {
		name1 = couple.Partner1.Username
	}

	if couple.Partner2 == nil {
		return name1
	}

	name2 := couple.Partner2.DisplayName
	if name2 == "" {
		name2 = couple.Partner2.Username
	}
	return fmt.Sprintf("%s & %s", name1, name2)
}
