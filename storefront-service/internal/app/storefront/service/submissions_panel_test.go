package service

import (
	"context"
	"testing"
	"time"

	"hamperhouse/storefront-service/internal/app/storefront/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func submissions(ids ...int) []entity.ContactSubmission {
	out := make([]entity.ContactSubmission, 0, len(ids))
	for _, id := range ids {
		out = append(out, entity.ContactSubmission{ID: id, FirstName: "Anna", Phone: "1234567"})
	}
	return out
}

func intPtr(v int) *int {
	return &v
}

func setupPanel(opts ...PanelOption) (*SubmissionsPanel, adminDeps) {
	svc, deps := setupAdminService()
	return svc.SubmissionsPanel("admin", opts...), deps
}

func TestSubmissionsPanel_Refresh_DefaultsToFirst(t *testing.T) {
	panel, deps := setupPanel()
	deps.api.On("ListSubmissions", mock.Anything, "").Return(submissions(3, 2, 1), nil)

	require.NoError(t, panel.Refresh(context.Background(), ""))

	state := panel.State()
	require.NotNil(t, state.SelectedID)
	assert.Equal(t, 3, *state.SelectedID)
	assert.Len(t, state.Items, 3)
}

func TestSubmissionsPanel_Refresh_KeepsSelection(t *testing.T) {
	panel, deps := setupPanel(WithSelected(intPtr(2)))
	deps.api.On("ListSubmissions", mock.Anything, "an").Return(submissions(3, 2), nil)

	require.NoError(t, panel.Refresh(context.Background(), "an"))

	assert.Equal(t, 2, *panel.State().SelectedID)
}

func TestSubmissionsPanel_Refresh_SelectionGoneFallsBackToFirst(t *testing.T) {
	panel, deps := setupPanel(WithSelected(intPtr(9)))
	deps.api.On("ListSubmissions", mock.Anything, "").Return(submissions(4, 5), nil)

	require.NoError(t, panel.Refresh(context.Background(), ""))

	assert.Equal(t, 4, *panel.State().SelectedID)
}

func TestSubmissionsPanel_Refresh_EmptyResult(t *testing.T) {
	panel, deps := setupPanel(WithSelected(intPtr(1)))
	deps.api.On("ListSubmissions", mock.Anything, "zzz").Return([]entity.ContactSubmission{}, nil)

	require.NoError(t, panel.Refresh(context.Background(), "zzz"))

	state := panel.State()
	assert.Nil(t, state.SelectedID)
	assert.Empty(t, state.Items)
}

func TestSubmissionsPanel_Refresh_Error(t *testing.T) {
	panel, deps := setupPanel()
	deps.api.On("ListSubmissions", mock.Anything, "").Return(nil, errUpstream)

	err := panel.Refresh(context.Background(), "")

	assert.ErrorIs(t, err, errUpstream)
	assert.ErrorIs(t, panel.Err(), errUpstream)
}

func TestSubmissionsPanel_Delete_OnlyItemClearsSelection(t *testing.T) {
	// Arrange
	panel, deps := setupPanel()
	expectSideEffects(deps)
	deps.api.On("ListSubmissions", mock.Anything, "").Return(submissions(1), nil)
	deps.api.On("DeleteSubmission", mock.Anything, 1).Return(nil)
	require.NoError(t, panel.Refresh(context.Background(), ""))

	// Act
	err := panel.Delete(context.Background(), 1, true)

	// Assert
	require.NoError(t, err)
	state := panel.State()
	assert.Nil(t, state.SelectedID)
	assert.Empty(t, state.Items)
}

func TestSubmissionsPanel_Delete_SelectedMovesToPrevious(t *testing.T) {
	panel, deps := setupPanel(WithSelected(intPtr(30)))
	expectSideEffects(deps)
	deps.api.On("ListSubmissions", mock.Anything, "").Return(submissions(10, 20, 30, 40), nil)
	deps.api.On("DeleteSubmission", mock.Anything, 30).Return(nil)
	require.NoError(t, panel.Refresh(context.Background(), ""))

	require.NoError(t, panel.Delete(context.Background(), 30, true))

	state := panel.State()
	assert.Equal(t, 20, *state.SelectedID)
	assert.Len(t, state.Items, 3)
}

func TestSubmissionsPanel_Delete_FirstSelectedClampsToZero(t *testing.T) {
	panel, deps := setupPanel()
	expectSideEffects(deps)
	deps.api.On("ListSubmissions", mock.Anything, "").Return(submissions(10, 20), nil)
	deps.api.On("DeleteSubmission", mock.Anything, 10).Return(nil)
	require.NoError(t, panel.Refresh(context.Background(), ""))

	require.NoError(t, panel.Delete(context.Background(), 10, true))

	assert.Equal(t, 20, *panel.State().SelectedID)
}

func TestSubmissionsPanel_Delete_NotSelectedKeepsSelection(t *testing.T) {
	panel, deps := setupPanel(WithSelected(intPtr(20)))
	expectSideEffects(deps)
	deps.api.On("ListSubmissions", mock.Anything, "").Return(submissions(10, 20, 30), nil)
	deps.api.On("DeleteSubmission", mock.Anything, 30).Return(nil)
	require.NoError(t, panel.Refresh(context.Background(), ""))

	require.NoError(t, panel.Delete(context.Background(), 30, true))

	assert.Equal(t, 20, *panel.State().SelectedID)
}

func TestSubmissionsPanel_Delete_RequiresConfirmation(t *testing.T) {
	panel, deps := setupPanel()

	err := panel.Delete(context.Background(), 1, false)

	assert.ErrorIs(t, err, ErrConfirmationRequired)
	deps.api.AssertNotCalled(t, "DeleteSubmission", mock.Anything, mock.Anything)
}

func TestSubmissionsPanel_Delete_FailureLeavesState(t *testing.T) {
	panel, deps := setupPanel()
	deps.api.On("ListSubmissions", mock.Anything, "").Return(submissions(1, 2), nil)
	deps.api.On("DeleteSubmission", mock.Anything, 1).Return(errUpstream)
	require.NoError(t, panel.Refresh(context.Background(), ""))

	err := panel.Delete(context.Background(), 1, true)

	assert.ErrorIs(t, err, errUpstream)
	state := panel.State()
	assert.Len(t, state.Items, 2)
	assert.Equal(t, 1, *state.SelectedID)
}

func TestSubmissionsPanel_Search_Debounced(t *testing.T) {
	// Arrange
	panel, deps := setupPanel(WithDebounce(50 * time.Millisecond))
	defer panel.Stop()
	deps.api.On("ListSubmissions", mock.Anything, "ann").Return(submissions(5), nil)

	// Act - быстрый ввод: запрос уходит один раз с последним значением
	panel.Search(context.Background(), "a")
	panel.Search(context.Background(), "an")
	panel.Search(context.Background(), "ann")

	// Assert
	assert.Eventually(t, func() bool {
		return len(panel.State().Items) == 1
	}, time.Second, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	deps.api.AssertNumberOfCalls(t, "ListSubmissions", 1)
	deps.api.AssertCalled(t, "ListSubmissions", mock.Anything, "ann")
}

func TestSubmissionsPanel_DefaultDebounce(t *testing.T) {
	panel, _ := setupPanel()
	assert.Equal(t, 300*time.Millisecond, panel.debounce)
}

// slowStore отдает ответ на запрос "old" только после закрытия release
type slowStore struct {
	started  chan struct{}
	release  chan struct{}
	finished chan struct{}
}

func newSlowStore() *slowStore {
	return &slowStore{
		started:  make(chan struct{}),
		release:  make(chan struct{}),
		finished: make(chan struct{}),
	}
}

func (s *slowStore) ListSubmissions(ctx context.Context, search string) ([]entity.ContactSubmission, error) {
	if search == "old" {
		close(s.started)
		<-s.release
		defer close(s.finished)
		return submissions(1), nil
	}
	return submissions(2), nil
}

func (s *slowStore) DeleteSubmission(ctx context.Context, actor string, id int, confirmed bool) error {
	return nil
}

func itemIDs(state entity.SubmissionsState) []int {
	ids := make([]int, 0, len(state.Items))
	for _, item := range state.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestSubmissionsPanel_Refresh_OutdatedResultDropped(t *testing.T) {
	// Arrange
	store := newSlowStore()
	panel := NewSubmissionsPanel(store, "admin")

	oldDone := make(chan error, 1)
	go func() { oldDone <- panel.Refresh(context.Background(), "old") }()
	<-store.started

	// Act - новый запрос завершается раньше старого
	require.NoError(t, panel.Refresh(context.Background(), "new"))
	close(store.release)
	require.NoError(t, <-oldDone)

	// Assert
	state := panel.State()
	assert.Equal(t, []int{2}, itemIDs(state))
	assert.Equal(t, 2, *state.SelectedID)
}

func TestSubmissionsPanel_Search_InFlightCallbackDoesNotOverwrite(t *testing.T) {
	// Arrange
	store := newSlowStore()
	panel := NewSubmissionsPanel(store, "admin", WithDebounce(10*time.Millisecond))
	defer panel.Stop()

	panel.Search(context.Background(), "old")
	<-store.started

	// Act - таймер "old" уже сработал, Stop его не отменит
	panel.Search(context.Background(), "new")
	assert.Eventually(t, func() bool {
		ids := itemIDs(panel.State())
		return len(ids) == 1 && ids[0] == 2
	}, time.Second, 5*time.Millisecond)

	close(store.release)
	<-store.finished
	time.Sleep(50 * time.Millisecond)

	// Assert
	assert.Equal(t, []int{2}, itemIDs(panel.State()))
	assert.NoError(t, panel.Err())
}
