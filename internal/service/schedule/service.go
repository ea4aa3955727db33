package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	scheduleRepo "github.com/agarucorp/chrono-flow-prime-sub001/internal/infra/storage/schedule"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/service/schedule/models"
)

// Service сервис административного управления расписанием:
// недельный шаблон, календарь исключений и реестр отсутствий
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// UpsertSlot создает либо обновляет определение слота недельного шаблона
func (s *Service) UpsertSlot(ctx context.Context, req *models.UpsertSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpsertSlot: weekday=%d, slot=%d, time=%s-%s",
		req.Weekday, req.SlotNumber, req.StartTime, req.EndTime)

	// 1. Валидируем входные данные
	if err := validateSlot(req); err != nil {
		s.logger.Warn("UpsertSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем
	saved, err := s.scheduleRepo.UpsertSlotDefinition(ctx, req.ToDomainSlot())
	if err != nil {
		s.logger.Error("UpsertSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertSlot: successfully saved slot id=%d", saved.ID)
	return models.FromDomainSlot(saved), nil
}

// ListSlots получает активный недельный шаблон
func (s *Service) ListSlots(ctx context.Context) ([]*models.SlotResponse, error) {
	defs, err := s.scheduleRepo.ListSlotDefinitions(ctx)
	if err != nil {
		s.logger.Error("ListSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}

	out := make([]*models.SlotResponse, 0, len(defs))
	for i := range defs {
		out = append(out, models.FromDomainSlot(&defs[i]))
	}
	return out, nil
}

// CreateException создает исключение календаря на дату
func (s *Service) CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("CreateException: date=%s, kind=%s, custom_slots=%d",
		req.Date.Format(domain.DateFormat), req.Kind, len(req.CustomSlots))

	// 1. Валидируем входные данные
	exception := req.ToDomainException()
	exception.Date = domain.TruncateToDate(req.Date)
	if err := validateException(exception); err != nil {
		s.logger.Warn("CreateException: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем; вторую активную строку на дату отклонит БД
	created, err := s.scheduleRepo.CreateExceptionDay(ctx, exception)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionExists) {
			s.logger.Warn("CreateException: active exception already exists for %s",
				exception.Date.Format(domain.DateFormat))
			return nil, ErrExceptionAlreadyExists
		}
		s.logger.Error("CreateException: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateException: successfully created exception id=%d", created.ID)
	return models.FromDomainException(created), nil
}

// DeactivateException снимает исключение календаря
func (s *Service) DeactivateException(ctx context.Context, id int64) error {
	s.logger.Info("DeactivateException: id=%d", id)

	if err := s.scheduleRepo.DeactivateException(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeactivateException: exception id=%d not found", id)
			return ErrExceptionNotFound
		}
		s.logger.Error("DeactivateException: repository error: %v", err)
		return fmt.Errorf("%w: DeactivateException - repository error: %v", ErrInternal, err)
	}
	return nil
}

// CreateAbsence создает административное отсутствие
func (s *Service) CreateAbsence(ctx context.Context, req *models.CreateAbsenceRequest) (*models.AbsenceResponse, error) {
	s.logger.Info("CreateAbsence: kind=%s, start=%s", req.Kind, req.StartDate.Format(domain.DateFormat))

	// 1. Валидируем входные данные
	absence := req.ToDomainAbsence()
	absence.StartDate = domain.TruncateToDate(req.StartDate)
	if absence.EndDate != nil {
		end := domain.TruncateToDate(*absence.EndDate)
		absence.EndDate = &end
	}
	if err := validateAbsence(absence); err != nil {
		s.logger.Warn("CreateAbsence: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем
	created, err := s.scheduleRepo.CreateAbsenceOverride(ctx, absence)
	if err != nil {
		s.logger.Error("CreateAbsence: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateAbsence - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAbsence: successfully created absence id=%d", created.ID)
	return models.FromDomainAbsence(created), nil
}

// DeactivateAbsence снимает административное отсутствие
func (s *Service) DeactivateAbsence(ctx context.Context, id int64) error {
	s.logger.Info("DeactivateAbsence: id=%d", id)

	if err := s.scheduleRepo.DeactivateAbsence(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrAbsenceNotFound) {
			s.logger.Warn("DeactivateAbsence: absence id=%d not found", id)
			return ErrAbsenceNotFound
		}
		s.logger.Error("DeactivateAbsence: repository error: %v", err)
		return fmt.Errorf("%w: DeactivateAbsence - repository error: %v", ErrInternal, err)
	}
	return nil
}

// ListAbsences получает активные отсутствия за период
func (s *Service) ListAbsences(ctx context.Context, from, to time.Time) ([]*models.AbsenceResponse, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	absences, err := s.scheduleRepo.ListAbsencesInRange(ctx, domain.TruncateToDate(from), domain.TruncateToDate(to))
	if err != nil {
		s.logger.Error("ListAbsences: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAbsences - repository error: %v", ErrInternal, err)
	}

	out := make([]*models.AbsenceResponse, 0, len(absences))
	for i := range absences {
		out = append(out, models.FromDomainAbsence(&absences[i]))
	}
	return out, nil
}
