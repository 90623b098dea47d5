package submission

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptz-simulator/internal/eligibility"
	"ptz-simulator/internal/platform/metrics"
	dErrors "ptz-simulator/pkg/domain-errors"
)

// flakyStore fails a configured number of Append calls before succeeding.
type flakyStore struct {
	*InMemoryStore
	mu       sync.Mutex
	failures int
	attempts int
}

func (s *flakyStore) Append(ctx context.Context, sub Submission) error {
	s.mu.Lock()
	s.attempts++
	fail := s.attempts <= s.failures
	s.mu.Unlock()
	if fail {
		return errors.New("store unavailable")
	}
	return s.InMemoryStore.Append(ctx, sub)
}

// recordingNotifier captures sent emails; optionally fails every send.
type recordingNotifier struct {
	mu       sync.Mutex
	sent     []string
	subjects []string
	fail     bool
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("smtp down")
	}
	n.sent = append(n.sent, to)
	n.subjects = append(n.subjects, subject)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func fixedClock() func() time.Time {
	ts := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func validRequest() CreateRequest {
	return CreateRequest{
		FirstName: "Alice",
		LastName:  "Durand",
		Email:     "alice@example.fr",
		Phone:     "0601020304",
		Address:   "3 rue des Lilas",
		Profile: eligibility.Profile{
			HouseholdSize: 2,
			Zone:          eligibility.ZoneA,
			Income:        70000,
			HousingType:   eligibility.HousingIndividual,
			ProjectCost:   300000,
		},
	}
}

func newTestService(store Store, notifier *recordingNotifier, opts ...Option) *Service {
	opts = append([]Option{WithClock(fixedClock()), WithRetryMaxWait(200 * time.Millisecond)}, opts...)
	return NewService(store, notifier, eligibility.Tables2025(), testLogger(), &metrics.Metrics{}, opts...)
}

func TestService_Create_StoresAndNotifies(t *testing.T) {
	store := NewInMemoryStore()
	notifier := &recordingNotifier{}
	svc := newTestService(store, notifier)

	result, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Empty(t, result.Warning)
	assert.NotEmpty(t, result.Submission.ID)
	assert.True(t, result.Submission.Eligible)
	assert.Equal(t, 22500, result.Submission.LoanAmount)
	assert.Equal(t, "02/06/2025 14:30:00", result.Submission.SubmittedAt)

	stored, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, result.Submission.ID, stored[0].ID)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "alice@example.fr", notifier.sent[0])
	assert.Equal(t, "Confirmation de votre simulation PTZ", notifier.subjects[0])
}

func TestService_Create_IneligibleIsStoredWithReason(t *testing.T) {
	store := NewInMemoryStore()
	notifier := &recordingNotifier{}
	svc := newTestService(store, notifier)

	req := validRequest()
	req.Profile = eligibility.Profile{
		HouseholdSize: 1,
		Zone:          eligibility.ZoneC,
		Income:        30000,
		HousingType:   eligibility.HousingIndividual,
		ProjectCost:   120000,
	}

	result, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, result.Submission.Eligible)
	assert.Contains(t, result.Submission.Reason, "dépassent le plafond")

	stored, _ := store.ListAll(context.Background())
	require.Len(t, stored, 1)

	require.Len(t, notifier.subjects, 1)
	assert.Equal(t, "Résultat de votre simulation PTZ", notifier.subjects[0])
}

func TestService_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateRequest)
		field  string
	}{
		{"missing first name", func(r *CreateRequest) { r.FirstName = "  " }, "firstName"},
		{"missing last name", func(r *CreateRequest) { r.LastName = "" }, "lastName"},
		{"bad email", func(r *CreateRequest) { r.Email = "not-an-email" }, "email"},
		{"unknown zone", func(r *CreateRequest) { r.Zone = "D" }, "zone"},
		{"unknown housing type", func(r *CreateRequest) { r.HousingType = "chalet" }, "housingType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewInMemoryStore()
			svc := newTestService(store, &recordingNotifier{})

			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

			var de *dErrors.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Field)

			stored, _ := store.ListAll(context.Background())
			assert.Empty(t, stored, "nothing may be stored on validation failure")
		})
	}
}

func TestService_Create_RetriesTransientStoreFailure(t *testing.T) {
	store := &flakyStore{InMemoryStore: NewInMemoryStore(), failures: 2}
	notifier := &recordingNotifier{}
	svc := newTestService(store, notifier, WithRetryMaxWait(2*time.Second))

	result, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Empty(t, result.Warning)
	stored, _ := store.ListAll(context.Background())
	assert.Len(t, stored, 1)
	assert.Len(t, notifier.sent, 1)
}

func TestService_Create_PersistenceFailureReturnsVerdictWithWarning(t *testing.T) {
	store := &flakyStore{InMemoryStore: NewInMemoryStore(), failures: 1000}
	notifier := &recordingNotifier{}
	svc := newTestService(store, notifier)

	result, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err, "storage trouble must not fail the user flow")

	assert.NotEmpty(t, result.Warning)
	assert.True(t, result.Submission.Eligible, "the verdict is still computed")
	// No notification without successful persistence.
	assert.Empty(t, notifier.sent)
}

func TestService_Create_NotificationFailureIsNonFatal(t *testing.T) {
	store := NewInMemoryStore()
	notifier := &recordingNotifier{fail: true}
	svc := newTestService(store, notifier)

	result, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, result.Warning)

	stored, _ := store.ListAll(context.Background())
	assert.Len(t, stored, 1)
}

func TestService_List_MergesLegacySnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "submissions.json")
	legacyJSON := `[
		{"submissionDate":"01/01/2024 10:00:00","firstName":"Ancien","lastName":"Client","email":"ancien@example.fr","householdSize":"3","zone":"B1","income":"25000","housingType":"individual","projectCost":"200000","eligible":true,"tranche":2,"quotity":20,"ptzAmount":40000}
	]`
	require.NoError(t, os.WriteFile(path, []byte(legacyJSON), 0o600))

	store := NewInMemoryStore()
	svc := newTestService(store, &recordingNotifier{},
		WithLegacySource(NewLegacySource(path)))

	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	subs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)

	// Live record (02/06/2025) sorts before the legacy one.
	assert.Equal(t, "Alice", subs[0].FirstName)
	assert.Equal(t, "Ancien", subs[1].FirstName)
	assert.Equal(t, 40000, subs[1].LoanAmount)
}

func TestService_List_BrokenSnapshotServesStoreOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "submissions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewInMemoryStore()
	svc := newTestService(store, &recordingNotifier{},
		WithLegacySource(NewLegacySource(path)))

	_, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	subs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestService_Delete(t *testing.T) {
	store := NewInMemoryStore()
	svc := newTestService(store, &recordingNotifier{})

	result, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), []string{result.Submission.IdentityKey()})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	subs, _ := svc.List(context.Background())
	assert.Empty(t, subs)

	_, err = svc.Delete(context.Background(), nil)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestService_Replace_DeduplicatesBeforeWriting(t *testing.T) {
	store := NewInMemoryStore()
	svc := newTestService(store, &recordingNotifier{})

	dup := Submission{
		FirstName:   "Alice",
		LastName:    "Durand",
		Email:       "alice@example.fr",
		SubmittedAt: "01/01/2024 10:00:00",
	}
	require.NoError(t, svc.Replace(context.Background(), []Submission{dup, dup}))

	subs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}
