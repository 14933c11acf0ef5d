package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"hibiscus/internal/models/db_models"
	"hibiscus/internal/models/request_models"
	"hibiscus/internal/repositories"
	"hibiscus/pkg/utils"
)

type InquiryServiceInterface interface {
	ListInquiries(ctx context.Context) ([]db_models.Inquiry, error)
	CreateInquiry(ctx context.Context, request request_models.CreateInquiryRequest) (*db_models.Inquiry, error)
	// MarkRead is idempotent.
	MarkRead(ctx context.Context, id string) error
	DeleteInquiry(ctx context.Context, id string) error
}

type InquiryService struct {
	inquiryRepo repositories.InquiryRepository
	mailService IMailService
	logger      *zap.Logger
	now         func() time.Time
}

func NewInquiryService(inquiryRepo repositories.InquiryRepository, mailService IMailService, logger *zap.Logger) InquiryServiceInterface {
	return &InquiryService{
		inquiryRepo: inquiryRepo,
		mailService: mailService,
		logger:      logger.Named("inquiries"),
		now:         time.Now,
	}
}

func (s *InquiryService) ListInquiries(ctx context.Context) ([]db_models.Inquiry, error) {
	inquiries, err := s.inquiryRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list inquiries", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return inquiries, nil
}

func (s *InquiryService) CreateInquiry(ctx context.Context, request request_models.CreateInquiryRequest) (*db_models.Inquiry, error) {
	inquiry := &db_models.Inquiry{
		Name:         request.Name,
		Email:        request.Email,
		Phone:        request.Phone,
		TripLocation: request.TripLocation,
		Message:      request.Message,
		Date:         s.now(),
		Status:       db_models.InquiryStatusNew,
	}

	if err := s.inquiryRepo.Insert(ctx, inquiry); err != nil {
		s.logger.Error("create inquiry", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	go s.notify(*inquiry)

	return inquiry, nil
}

func (s *InquiryService) notify(inquiry db_models.Inquiry) {
	if err := s.mailService.SendInquiryNotification(inquiry); err != nil {
		s.logger.Warn("inquiry notification not sent", zap.String("inquiry_id", inquiry.NativeID), zap.Error(err))
	}
}

func (s *InquiryService) MarkRead(ctx context.Context, id string) error {
	found, err := s.inquiryRepo.SetStatus(ctx, id, db_models.InquiryStatusRead)
	return s.mutationResult("mark inquiry read", id, found, err)
}

func (s *InquiryService) DeleteInquiry(ctx context.Context, id string) error {
	found, err := s.inquiryRepo.Delete(ctx, id)
	return s.mutationResult("delete inquiry", id, found, err)
}

func (s *InquiryService) mutationResult(op, id string, found bool, err error) error {
	switch {
	case errors.Is(err, repositories.ErrMalformedID):
		return utils.ErrInvalidInquiryID
	case err != nil:
		s.logger.Error(op, zap.String("id", id), zap.Error(err))
		return utils.ErrDatabaseError
	case !found:
		return utils.ErrInquiryNotFound
	}
	return nil
}
