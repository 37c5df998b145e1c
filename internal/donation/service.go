// Package donation moves food items out of a pantry and records the donation
// receipt in one all-or-nothing transaction.
package donation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bytepantry/internal/domain"
)

const (
	defaultTxTimeout   = 10 * time.Second
	defaultMaxAttempts = 3
	rollbackTimeout    = 5 * time.Second
	tracerName         = "bytepantry/donation"
)

// Service is the transaction boundary around the coordinator and the record
// writer. Each call to Donate either commits every inventory mutation plus
// the receipt, or none of them.
type Service struct {
	store       domain.DonationTxBeginner
	receipts    domain.DonationRepository
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
	txTimeout   time.Duration
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// Option customizes a Service.
type Option func(*Service)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTxTimeout bounds each transaction attempt.
func WithTxTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.txTimeout = d
		}
	}
}

// WithMaxAttempts sets how many transactions a request may use when
// attempts fail with domain.ErrConflict.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithBackOff sets the delay policy between conflicting attempts.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(s *Service) { s.newBackOff = newBackOff }
}

func NewService(store domain.DonationTxBeginner, receipts domain.DonationRepository, opts ...Option) *Service {
	s := &Service{
		store:       store,
		receipts:    receipts,
		logger:      zerolog.Nop(),
		tracer:      otel.Tracer(tracerName),
		now:         time.Now,
		txTimeout:   defaultTxTimeout,
		maxAttempts: defaultMaxAttempts,
		newBackOff:  defaultBackOff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 25 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	return b
}

// Donate validates raw, applies its lines and records the receipt.
//
// Errors are one of *domain.ValidationError, *domain.NotFoundError,
// *domain.InsufficientQuantityError or *domain.PersistenceError. Whatever the
// error, no inventory row was changed and no receipt was written.
func (s *Service) Donate(ctx context.Context, raw RawRequest) (*domain.Donation, error) {
	ctx, span := s.tracer.Start(ctx, "donation.process")
	defer span.End()

	lc := newLifecycle(s.logger)
	req, err := Validate(raw)
	if err != nil {
		_ = lc.to(StateRolledBack)
		recordSpanError(span, err)
		s.logger.Info().Err(err).Msg("donation rejected")
		return nil, err
	}

	logger := s.logger.With().
		Int64("user_id", req.UserID).
		Int64("center_id", req.CenterID).
		Int("lines", len(req.Lines)).
		Int("dropped", req.Dropped).
		Logger()
	lc.logger = logger
	span.SetAttributes(
		attribute.Int64("donation.user_id", req.UserID),
		attribute.Int64("donation.center_id", req.CenterID),
		attribute.Int("donation.lines", len(req.Lines)),
		attribute.Int("donation.dropped_lines", req.Dropped),
	)

	attempts := 0
	donation, err := backoff.Retry(ctx, func() (*domain.Donation, error) {
		attempts++
		d, err := s.attempt(ctx, req, lc)
		if err == nil {
			return d, nil
		}
		if errors.Is(err, domain.ErrConflict) && attempts < s.maxAttempts {
			logger.Warn().Err(err).Int("attempt", attempts).Msg("donation conflict, retrying")
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}, backoff.WithBackOff(s.newBackOff()), backoff.WithMaxTries(uint(s.maxAttempts)))
	span.SetAttributes(attribute.Int("donation.attempts", attempts))

	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Err
		}
		err = classify(err)
		_ = lc.to(StateRolledBack)
		recordSpanError(span, err)

		var persistence *domain.PersistenceError
		if errors.As(err, &persistence) {
			logger.Error().Err(err).Int("attempts", attempts).Msg("donation rolled back")
		} else {
			logger.Warn().Err(err).Int("attempts", attempts).Msg("donation rolled back")
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int64("donation.id", donation.ID))
	span.SetStatus(codes.Ok, "committed")
	logger.Info().Int64("donation_id", donation.ID).Int("attempts", attempts).Msg("donation committed")
	return donation, nil
}

// attempt runs one transaction. The transaction is rolled back on every
// path that does not reach a successful commit.
func (s *Service) attempt(ctx context.Context, req Request, lc *lifecycle) (*domain.Donation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.store.BeginDonationTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin donation tx: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := rollback(ctx, tx); rbErr != nil {
			lc.logger.Error().Err(rbErr).Msg("donation rollback failed")
		}
	}()

	if err := lc.to(StateProcessing); err != nil {
		return nil, err
	}
	snapshot, err := applyLines(ctx, tx, req.Lines)
	if err != nil {
		return nil, err
	}

	if err := lc.to(StateRecording); err != nil {
		return nil, err
	}
	donation, err := recordDonation(ctx, tx, req, snapshot, s.now())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit donation tx: %w", err)
	}
	committed = true
	_ = lc.to(StateCommitted)
	return donation, nil
}

// rollback runs detached from the caller's cancellation so that a caller
// going away still ends the transaction.
func rollback(ctx context.Context, tx domain.DonationTx) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()
	return tx.Rollback(ctx)
}

// History returns the user's receipts, most recent first.
func (s *Service) History(ctx context.Context, userID int64) ([]domain.DonationReceipt, error) {
	if userID <= 0 {
		return nil, &domain.ValidationError{Field: "userID", Message: "Invalid userID"}
	}
	receipts, err := s.receipts.ListDonationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return receipts, nil
}

func classify(err error) error {
	var (
		validation   *domain.ValidationError
		notFound     *domain.NotFoundError
		insufficient *domain.InsufficientQuantityError
		persistence  *domain.PersistenceError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &notFound),
		errors.As(err, &insufficient), errors.As(err, &persistence):
		return err
	}
	return &domain.PersistenceError{Op: "donation", Err: err}
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
