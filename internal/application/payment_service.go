package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
	repo "github.com/oksasatya/art-school-server/internal/domain/repository"
	"github.com/oksasatya/art-school-server/pkg/mailer"
	tpl "github.com/oksasatya/art-school-server/pkg/mailer/templates"
)

type PaymentService struct {
	Repo        repo.PaymentRepository
	Enrollments repo.EnrollmentRepository
	Classes     repo.ClassRepository
	Gateway     PaymentGateway
	Receipts    ReceiptPublisher
	Logger      *logrus.Logger

	Currency        string
	AppName         string
	ReceiptsEnabled bool
}

func NewPaymentService(payments repo.PaymentRepository, enrollments repo.EnrollmentRepository, classes repo.ClassRepository,
	gateway PaymentGateway, receipts ReceiptPublisher, logger *logrus.Logger, currency, appName string, receiptsEnabled bool) *PaymentService {
	return &PaymentService{
		Repo:            payments,
		Enrollments:     enrollments,
		Classes:         classes,
		Gateway:         gateway,
		Receipts:        receipts,
		Logger:          logger,
		Currency:        currency,
		AppName:         appName,
		ReceiptsEnabled: receiptsEnabled,
	}
}

// CreateIntent asks the processor for a card payment intent of totalPrice (major units).
// Processor failures come back wrapped in ErrUpstreamGateway.
func (s *PaymentService) CreateIntent(ctx context.Context, totalPrice float64) (*entity.PaymentIntent, error) {
	amount := int64(math.Round(totalPrice * 100))
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if s.Gateway == nil {
		return nil, ErrUpstreamGateway
	}
	intent, err := s.Gateway.CreatePaymentIntent(ctx, amount, s.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamGateway, err)
	}
	return intent, nil
}

type RecordPaymentResult struct {
	InsertResult entity.InsertResult `json:"insertResult"`
	DeleteResult entity.DeleteResult `json:"deleteResult"`
}

// Record stores a settled payment for the caller, clears the paid enrollments,
// counts the new students on each class and enqueues a receipt. Only
// enrollments the caller owns are paid for, and the classes credited are the
// ones those enrollments point at.
func (s *PaymentService) Record(ctx context.Context, callerEmail string, p *entity.Payment) (RecordPaymentResult, error) {
	if len(p.EnrollmentIDs) == 0 {
		return RecordPaymentResult{}, ErrEmptyEnrollmentList
	}
	owned, err := s.Enrollments.ListOwned(ctx, p.EnrollmentIDs, callerEmail)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidID) {
			return RecordPaymentResult{}, ErrInvalidID
		}
		return RecordPaymentResult{}, err
	}
	if len(owned) == 0 {
		return RecordPaymentResult{}, ErrEmptyEnrollmentList
	}

	p.Email = callerEmail
	p.EnrollmentIDs = make([]string, 0, len(owned))
	p.ClassIDs = make([]string, 0, len(owned))
	names := make([]string, 0, len(owned))
	for _, e := range owned {
		p.EnrollmentIDs = append(p.EnrollmentIDs, e.ID.Hex())
		p.ClassIDs = append(p.ClassIDs, e.ClassID)
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	if len(names) > 0 {
		p.ClassNames = names
	}
	p.Quantity = len(owned)
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}

	ins, err := s.Repo.Create(ctx, p)
	if err != nil {
		return RecordPaymentResult{}, err
	}
	del, err := s.Enrollments.DeleteOwned(ctx, p.EnrollmentIDs, callerEmail)
	if err != nil {
		return RecordPaymentResult{InsertResult: ins}, err
	}
	if err := s.Classes.RecordEnrollments(ctx, p.ClassIDs); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("transaction_id", p.TransactionID).Warn("class counters not updated")
	}
	s.enqueueReceipt(ctx, p)
	return RecordPaymentResult{InsertResult: ins, DeleteResult: del}, nil
}

func (s *PaymentService) List(ctx context.Context, callerEmail string) ([]entity.Payment, error) {
	return s.Repo.ListByEmail(ctx, callerEmail)
}

func (s *PaymentService) enqueueReceipt(ctx context.Context, p *entity.Payment) {
	if s.Receipts == nil || !s.ReceiptsEnabled {
		return
	}
	data := tpl.NewReceiptData(s.AppName, p.Email, p.TransactionID, p.ClassNames, p.Price, s.Currency, tpl.WithPaidAt(p.Date))
	job := mailer.EmailJob{To: p.Email, Template: tpl.PaymentReceipt, Data: tpl.ToMap(data)}
	if err := s.Receipts.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("transaction_id", p.TransactionID).Warn("failed to publish receipt job")
	}
}
