package request_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workbay/workbay/internal/core/request"
	"github.com/workbay/workbay/internal/platform/apperr"
	"github.com/workbay/workbay/pkg/pagination"
)

// fakeRepository keeps requests in a map and mirrors the conditional-claim
// semantics of the real store.
type fakeRepository struct {
	items map[string]*request.Request

	// loseRace forces Snag to report the request as taken even when the
	// in-memory copy still looks open.
	loseRace bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: map[string]*request.Request{}}
}

func (f *fakeRepository) Create(_ context.Context, item *request.Request) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*request.Request, error) {
	if item, ok := f.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, apperr.NotFound("Request")
}

func (f *fakeRepository) ListOpen(_ context.Context, _ pagination.Params) ([]*request.Request, int, error) {
	var open []*request.Request
	for _, item := range f.items {
		if item.Status == request.StatusOpen {
			open = append(open, item)
		}
	}
	return open, len(open), nil
}

func (f *fakeRepository) ListByClient(_ context.Context, clientID string, _ pagination.Params) ([]*request.Request, int, error) {
	var owned []*request.Request
	for _, item := range f.items {
		if item.ClientID == clientID {
			owned = append(owned, item)
		}
	}
	return owned, len(owned), nil
}

func (f *fakeRepository) ListSnaggedBy(_ context.Context, developerID string, _ pagination.Params) ([]*request.Request, int, error) {
	var held []*request.Request
	for _, item := range f.items {
		if item.SnaggedBy != nil && *item.SnaggedBy == developerID {
			held = append(held, item)
		}
	}
	return held, len(held), nil
}

func (f *fakeRepository) Update(_ context.Context, item *request.Request) error {
	if _, ok := f.items[item.ID]; !ok {
		return apperr.NotFound("Request")
	}
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeRepository) Snag(_ context.Context, requestID, developerID string) (bool, error) {
	item, ok := f.items[requestID]
	if !ok || item.Status != request.StatusOpen || f.loseRace {
		return false, nil
	}
	now := time.Now()
	item.Status = request.StatusSnagged
	item.SnaggedBy = &developerID
	item.SnaggedAt = &now
	return true, nil
}

func newTestService() (*request.Service, *fakeRepository) {
	repo := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return request.NewService(repo, logger), repo
}

func openRequest(t *testing.T, service *request.Service, clientID string) *request.Request {
	t.Helper()
	item, err := service.Create(context.Background(), clientID, request.CreateInput{
		Title:       "Landing page rebuild",
		Description: "Rework the marketing site in plain HTML and CSS.",
		BudgetCents: 250_00,
	})
	require.NoError(t, err)
	return item
}

/*
TestCreate_ScreensSensitiveContent verifies requests carrying credential-like
text are rejected before they are stored.
*/
func TestCreate_ScreensSensitiveContent(t *testing.T) {
	service, repo := newTestService()

	tests := []struct {
		name        string
		title       string
		description string
	}{
		{"api_key_in_title", "Leaked api_key rotation", "Routine work."},
		{"password_in_description", "Small fix", "The admin password is swordfish."},
		{"secret_in_description", "Deploy help", "Use the client secret from the vault."},
		{"token_in_description", "CI work", "Paste the token into the pipeline."},
		{"private_key", "Infra", "Here is our private-key for the bastion."},
		{"credential", "Setup", "Ship me the credential file."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), "client-1", request.CreateInput{
				Title:       tt.title,
				Description: tt.description,
			})
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 422, appError.HTTPStatus)
			assert.Contains(t, appError.Message, "sensitive data")
		})
	}

	assert.Empty(t, repo.items)

	// Innocuous text that merely resembles the patterns still passes.
	item, err := service.Create(context.Background(), "client-1", request.CreateInput{
		Title:       "Authentication flow review",
		Description: "Review our login UX and suggest improvements.",
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusOpen, item.Status)
}

/*
TestSnag_Lifecycle walks the claim flow: happy path, self-snag, double snag,
and snagging a closed request.
*/
func TestSnag_Lifecycle(t *testing.T) {
	service, _ := newTestService()
	item := openRequest(t, service, "client-1")

	// Owner cannot claim their own request.
	_, err := service.Snag(context.Background(), item.ID, "client-1")
	requireAppError(t, err, 403)

	// First developer wins.
	snagged, err := service.Snag(context.Background(), item.ID, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, request.StatusSnagged, snagged.Status)
	require.NotNil(t, snagged.SnaggedBy)
	assert.Equal(t, "dev-1", *snagged.SnaggedBy)
	assert.NotNil(t, snagged.SnaggedAt)

	// Second developer sees a conflict.
	_, err = service.Snag(context.Background(), item.ID, "dev-2")
	requireAppError(t, err, 409)

	// Completed requests cannot be snagged either.
	_, err = service.Complete(context.Background(), item.ID, "client-1")
	require.NoError(t, err)
	_, err = service.Snag(context.Background(), item.ID, "dev-2")
	requireAppError(t, err, 409)
}

/*
TestSnag_LostRace verifies a claim that passes the pre-read but loses the
conditional update maps to a conflict, not an internal error.
*/
func TestSnag_LostRace(t *testing.T) {
	service, repo := newTestService()
	item := openRequest(t, service, "client-1")

	repo.loseRace = true

	_, err := service.Snag(context.Background(), item.ID, "dev-1")
	requireAppError(t, err, 409)
}

/*
TestRelease verifies only the holding developer can return a request to the
open pool.
*/
func TestRelease(t *testing.T) {
	service, _ := newTestService()
	item := openRequest(t, service, "client-1")

	// Not snagged yet.
	_, err := service.Release(context.Background(), item.ID, "dev-1")
	requireAppError(t, err, 409)

	_, err = service.Snag(context.Background(), item.ID, "dev-1")
	require.NoError(t, err)

	// A different developer cannot release it.
	_, err = service.Release(context.Background(), item.ID, "dev-2")
	requireAppError(t, err, 403)

	released, err := service.Release(context.Background(), item.ID, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, request.StatusOpen, released.Status)
	assert.Nil(t, released.SnaggedBy)
	assert.Nil(t, released.SnaggedAt)

	// Once released the request is claimable again.
	again, err := service.Snag(context.Background(), item.ID, "dev-2")
	require.NoError(t, err)
	require.NotNil(t, again.SnaggedBy)
	assert.Equal(t, "dev-2", *again.SnaggedBy)
}

/*
TestComplete verifies completion is owner-only and requires the work to be
snagged first.
*/
func TestComplete(t *testing.T) {
	service, _ := newTestService()
	item := openRequest(t, service, "client-1")

	// Open requests cannot be completed.
	_, err := service.Complete(context.Background(), item.ID, "client-1")
	requireAppError(t, err, 409)

	_, err = service.Snag(context.Background(), item.ID, "dev-1")
	require.NoError(t, err)

	// Only the owner may complete.
	_, err = service.Complete(context.Background(), item.ID, "client-2")
	requireAppError(t, err, 403)

	done, err := service.Complete(context.Background(), item.ID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, request.StatusCompleted, done.Status)
}

/*
TestCancel verifies withdrawal rules: owner-only, and closed requests stay
closed.
*/
func TestCancel(t *testing.T) {
	service, _ := newTestService()
	item := openRequest(t, service, "client-1")

	_, err := service.Cancel(context.Background(), item.ID, "client-2")
	requireAppError(t, err, 403)

	cancelled, err := service.Cancel(context.Background(), item.ID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, request.StatusCancelled, cancelled.Status)

	// Cancelling twice is a conflict.
	_, err = service.Cancel(context.Background(), item.ID, "client-1")
	requireAppError(t, err, 409)
}

func requireAppError(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, status, appError.HTTPStatus)
}
