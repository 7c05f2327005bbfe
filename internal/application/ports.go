package application

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/art-school-server/internal/domain/entity"
)

// PaymentGateway creates payment intents at the external processor.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (*entity.PaymentIntent, error)
}

// ImageUploader stores an object and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// ClassIndex is the full-text index kept next to the classes collection.
type ClassIndex interface {
	Index(ctx context.Context, c *entity.Class) error
	Search(ctx context.Context, q string, size int) ([]entity.Class, error)
}

// ReceiptPublisher enqueues email jobs for the worker.
type ReceiptPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type AuditEvent struct {
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
	At        time.Time
}

// AuditSink persists audit events.
type AuditSink interface {
	Record(ctx context.Context, ev AuditEvent) error
}

const (
	AuditTokenIssued        = "token_issued"
	AuditTokenDenied        = "token_denied"
	AuditIdentityRegistered = "identity_registered"
	AuditRoleUpdated        = "role_updated"
	AuditOwnerMismatch      = "owner_mismatch"
)

type requestMetaKey struct{}

// RequestMeta is the client information attached to audit events.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// WithRequestMeta stores m on ctx for the Auditor to pick up.
func WithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, m)
}

// Auditor records events best-effort: a failing sink is logged, never surfaced.
type Auditor struct {
	sink   AuditSink
	logger *logrus.Logger
}

func NewAuditor(sink AuditSink, logger *logrus.Logger) *Auditor {
	return &Auditor{sink: sink, logger: logger}
}

func (a *Auditor) Record(ctx context.Context, ev AuditEvent) {
	if a == nil || a.sink == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if m, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		if ev.IP == "" {
			ev.IP = m.IP
		}
		if ev.UserAgent == "" {
			ev.UserAgent = m.UserAgent
		}
	}
	if err := a.sink.Record(ctx, ev); err != nil && a.logger != nil {
		a.logger.WithError(err).WithField("action", ev.Action).Warn("audit record failed")
	}
}
