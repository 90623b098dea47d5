package submission

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"ptz-simulator/internal/eligibility"
	"ptz-simulator/internal/notify"
	"ptz-simulator/internal/platform/metrics"
	dErrors "ptz-simulator/pkg/domain-errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CreateRequest carries everything the wizard collects.
type CreateRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Commune       string `json:"commune"`
	NotPriorOwner bool   `json:"notPriorOwner"`

	eligibility.Profile
}

// CreateResult is what the submitter gets back. Warning is set when the
// verdict was computed but could not be persisted; the user flow never
// fails on storage trouble.
type CreateResult struct {
	Submission Submission `json:"submission"`
	Warning    string     `json:"warning,omitempty"`
}

// Service orchestrates calculation, persistence, and notification. It keeps
// orchestration out of handlers and domain logic thin.
type Service struct {
	store    Store
	legacy   *LegacySource
	notifier notify.Notifier
	tables   *eligibility.Tables
	logger   *slog.Logger
	metrics  *metrics.Metrics

	now          func() time.Time
	retryMaxWait time.Duration
}

type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRetryMaxWait bounds the persistence retry window.
func WithRetryMaxWait(d time.Duration) Option {
	return func(s *Service) { s.retryMaxWait = d }
}

// WithLegacySource attaches a flat-file snapshot reconciled into reads.
func WithLegacySource(legacy *LegacySource) Option {
	return func(s *Service) { s.legacy = legacy }
}

func NewService(
	store Store,
	notifier notify.Notifier,
	tables *eligibility.Tables,
	logger *slog.Logger,
	m *metrics.Metrics,
	opts ...Option,
) *Service {
	svc := &Service{
		store:        store,
		notifier:     notifier,
		tables:       tables,
		logger:       logger,
		metrics:      m,
		now:          time.Now,
		retryMaxWait: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create validates the request, computes the verdict, persists the
// submission (with backoff before giving up), and sends the confirmation
// email. Ineligibility is a normal outcome; only malformed input errors.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if err := validateContact(req); err != nil {
		return nil, err
	}

	result, err := eligibility.Calculate(s.tables, req.Profile)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sub := Submission{
		ID:            uuid.NewString(),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		Address:       strings.TrimSpace(req.Address),
		Commune:       strings.TrimSpace(req.Commune),
		NotPriorOwner: req.NotPriorOwner,
		Profile:       req.Profile,
		Result:        result,
		SubmittedAt:   FormatSubmittedAt(now),
		CreatedAt:     now,
	}

	if err := s.persistWithRetry(ctx, sub); err != nil {
		s.metrics.RecordPersistenceFailure()
		s.logger.ErrorContext(ctx, "failed to persist submission after retries",
			"submission_id", sub.ID,
			"error", err.Error(),
		)
		// The verdict still goes back to the user, with a warning that the
		// record may not have been saved.
		return &CreateResult{
			Submission: sub,
			Warning:    "Les résultats ont été calculés mais n'ont pas pu être enregistrés. Veuillez réessayer ultérieurement.",
		}, nil
	}
	s.metrics.RecordSubmission(sub.Eligible)

	s.sendConfirmation(ctx, sub)

	return &CreateResult{Submission: sub}, nil
}

func (s *Service) persistWithRetry(ctx context.Context, sub Submission) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxElapsedTime = s.retryMaxWait

	attempt := 0
	return backoff.Retry(func() error {
		if attempt > 0 {
			s.metrics.RecordPersistenceRetry()
		}
		attempt++
		return s.store.Append(ctx, sub)
	}, backoff.WithContext(policy, ctx))
}

// sendConfirmation emails the verdict. Failure is logged and counted but
// never surfaces to the submitter.
func (s *Service) sendConfirmation(ctx context.Context, sub Submission) {
	subject, body := notify.ConfirmationEmail(
		sub.FirstName, sub.LastName, sub.Eligible, sub.LoanAmount, sub.Reason)
	if err := s.notifier.Send(ctx, sub.Email, subject, body); err != nil {
		s.metrics.RecordNotificationFailure()
		s.logger.WarnContext(ctx, "confirmation email failed",
			"submission_id", sub.ID,
			"error", err.Error(),
		)
	}
}

// List returns the canonical submission list: the live store reconciled
// with the legacy snapshot, deduplicated, newest first.
func (s *Service) List(ctx context.Context) ([]Submission, error) {
	stored, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list submissions")
	}

	var legacySubs []Submission
	if s.legacy != nil {
		legacySubs, err = s.legacy.Load()
		if err != nil {
			// A broken snapshot must not hide live data.
			s.logger.WarnContext(ctx, "legacy snapshot unreadable, serving store only",
				"error", err.Error(),
			)
			legacySubs = nil
		}
	}

	// The live store is the latest write path, so it wins on key overlap.
	return Merge(legacySubs, stored), nil
}

// Delete removes submissions by identity key.
func (s *Service) Delete(ctx context.Context, keys []string) (int, error) {
	if len(keys) == 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "no identity keys given")
	}
	deleted, err := s.store.DeleteByKeys(ctx, keys)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete submissions")
	}
	return deleted, nil
}

// Replace swaps the whole stored collection, deduplicated first so the
// canonical invariant (one record per identity key) holds after the write.
// Records without an ID (legacy rows round-tripped through the admin list)
// get one assigned.
func (s *Service) Replace(ctx context.Context, subs []Submission) error {
	merged := Merge(nil, subs)
	for i := range merged {
		if merged[i].ID == "" {
			merged[i].ID = uuid.NewString()
		}
		if merged[i].CreatedAt.IsZero() {
			merged[i].CreatedAt = s.now()
		}
	}
	if err := s.store.ReplaceAll(ctx, merged); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to replace submissions")
	}
	return nil
}

func validateContact(req CreateRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return dErrors.NewField("firstName", "le prénom est requis")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return dErrors.NewField("lastName", "le nom est requis")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !emailPattern.MatchString(email) {
		return dErrors.NewField("email", "adresse email invalide")
	}
	return nil
}
