package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hamperhouse/pkg/logger"
	"hamperhouse/storefront-service/internal/app/storefront/entity"
)

// SearchDebounce - пауза ввода перед повторным запросом списка заявок
const SearchDebounce = 300 * time.Millisecond

// SubmissionStore - источник заявок для панели
type SubmissionStore interface {
	ListSubmissions(ctx context.Context, search string) ([]entity.ContactSubmission, error)
	DeleteSubmission(ctx context.Context, actor string, id int, confirmed bool) error
}

// apiSubmissionStore читает заявки из API, удаляет через AdminService
type apiSubmissionStore struct {
	admin *AdminService
}

func (s apiSubmissionStore) ListSubmissions(ctx context.Context, search string) ([]entity.ContactSubmission, error) {
	return s.admin.api.ListSubmissions(ctx, search)
}

func (s apiSubmissionStore) DeleteSubmission(ctx context.Context, actor string, id int, confirmed bool) error {
	return s.admin.DeleteSubmission(ctx, actor, id, confirmed)
}

// SubmissionsPanel - список заявок с поиском и выбранной записью
type SubmissionsPanel struct {
	store    SubmissionStore
	actor    string
	debounce time.Duration

	mu       sync.Mutex
	items    []entity.ContactSubmission
	selected *int
	timer    *time.Timer
	lastErr  error
	seq      uint64 // номер последнего запроса списка; ответы на более старые отбрасываются
}

type PanelOption func(*SubmissionsPanel)

// WithDebounce меняет паузу поиска
func WithDebounce(d time.Duration) PanelOption {
	return func(p *SubmissionsPanel) {
		p.debounce = d
	}
}

// WithSelected восстанавливает выбранную заявку, например из query параметра
func WithSelected(id *int) PanelOption {
	return func(p *SubmissionsPanel) {
		p.selected = id
	}
}

func NewSubmissionsPanel(store SubmissionStore, actor string, opts ...PanelOption) *SubmissionsPanel {
	p := &SubmissionsPanel{
		store:    store,
		actor:    actor,
		debounce: SearchDebounce,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SubmissionsPanel создает панель заявок от имени администратора
func (s *AdminService) SubmissionsPanel(actor string, opts ...PanelOption) *SubmissionsPanel {
	return NewSubmissionsPanel(apiSubmissionStore{admin: s}, actor, opts...)
}

// Refresh перечитывает список; выбор сохраняется, если запись осталась в выдаче,
// иначе выбирается первая запись или ничего
func (p *SubmissionsPanel) Refresh(ctx context.Context, search string) error {
	return p.refresh(ctx, search, p.nextSeq())
}

// Search откладывает Refresh до паузы во вводе; новый вызов сбрасывает таймер
func (p *SubmissionsPanel) Search(ctx context.Context, query string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
	}

	p.seq++
	seq := p.seq
	p.timer = time.AfterFunc(p.debounce, func() {
		if err := p.refresh(ctx, query, seq); err != nil {
			logger.Warn().Err(err).Str("search", query).Msg("Submissions search failed")
		}
	})
}

func (p *SubmissionsPanel) nextSeq() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	return p.seq
}

// refresh применяет результат, только если после него не было нового запроса
func (p *SubmissionsPanel) refresh(ctx context.Context, search string, seq uint64) error {
	items, err := p.store.ListSubmissions(ctx, search)

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq {
		logger.Debug().Str("search", search).Msg("Dropping outdated submissions result")
		return nil
	}

	if err != nil {
		p.lastErr = err
		return fmt.Errorf("failed to load submissions: %w", err)
	}
	p.lastErr = nil

	if items == nil {
		items = []entity.ContactSubmission{}
	}
	p.items = items
	p.selected = reselect(items, p.selected)
	return nil
}

// Delete требует подтверждения; при удалении выбранной записи выбор
// переходит на предыдущую позицию или сбрасывается, если список пуст
func (p *SubmissionsPanel) Delete(ctx context.Context, id int, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := p.store.DeleteSubmission(ctx, p.actor, id, confirmed); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	idx := indexOf(p.items, id)
	if idx < 0 {
		return nil
	}

	wasSelected := p.selected != nil && *p.selected == id
	p.items = append(p.items[:idx:idx], p.items[idx+1:]...)

	if !wasSelected {
		return nil
	}

	if len(p.items) == 0 {
		p.selected = nil
		return nil
	}

	next := idx - 1
	if next < 0 {
		next = 0
	}
	if next > len(p.items)-1 {
		next = len(p.items) - 1
	}
	selectedID := p.items[next].ID
	p.selected = &selectedID
	return nil
}

// State - снимок состояния панели для ответа клиенту
func (p *SubmissionsPanel) State() entity.SubmissionsState {
	p.mu.Lock()
	defer p.mu.Unlock()

	var selected *int
	if p.selected != nil {
		id := *p.selected
		selected = &id
	}

	return entity.SubmissionsState{
		Items:      entity.ToSubmissionViews(p.items),
		SelectedID: selected,
	}
}

// Err - ошибка последнего обновления (для отложенного поиска)
func (p *SubmissionsPanel) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Stop отменяет отложенный поиск
func (p *SubmissionsPanel) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
}

func reselect(items []entity.ContactSubmission, selected *int) *int {
	if len(items) == 0 {
		return nil
	}
	if selected != nil && indexOf(items, *selected) >= 0 {
		id := *selected
		return &id
	}
	id := items[0].ID
	return &id
}

func indexOf(items []entity.ContactSubmission, id int) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
