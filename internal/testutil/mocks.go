package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/websocket"
)

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets  map[int32]*domain.Budget
	Expenses *MockExpenseRepository
	NextID   int32
	CreateFn func(budget *domain.Budget) (*domain.Budget, error)
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int32]*domain.Budget),
		NextID:  1,
	}
}

// Create creates a new budget
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	if m.CreateFn != nil {
		return m.CreateFn(budget)
	}
	budget.ID = m.NextID
	m.NextID++
	if budget.CreatedAt.IsZero() {
		budget.CreatedAt = time.Now().UTC()
	}
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByID retrieves a budget by ID, scoped to the owner
func (m *MockBudgetRepository) GetByID(owner string, id int32) (*domain.Budget, error) {
	budget, ok := m.Budgets[id]
	if !ok || budget.CreatedBy != owner {
		return nil, domain.ErrBudgetNotFound
	}
	return budget, nil
}

// ListWithTotals lists the owner's budgets joined with expense aggregates
func (m *MockBudgetRepository) ListWithTotals(owner string) ([]*domain.BudgetWithTotals, error) {
	ids := make([]int32, 0, len(m.Budgets))
	for id, b := range m.Budgets {
		if b.CreatedBy == owner {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]*domain.BudgetWithTotals, 0, len(ids))
	for _, id := range ids {
		bt := &domain.BudgetWithTotals{Budget: *m.Budgets[id]}
		if m.Expenses != nil {
			for _, e := range m.Expenses.Expenses {
				if e.BudgetID == id {
					bt.TotalSpend += e.Amount
					bt.ItemCount++
				}
			}
		}
		result = append(result, bt)
	}
	return result, nil
}

// SetIconURL updates the budget's icon URL
func (m *MockBudgetRepository) SetIconURL(owner string, id int32, iconURL string) (*domain.Budget, error) {
	budget, ok := m.Budgets[id]
	if !ok || budget.CreatedBy != owner {
		return nil, domain.ErrBudgetNotFound
	}
	budget.IconURL = &iconURL
	return budget, nil
}

// HasExpenses reports whether any expense references the budget
func (m *MockBudgetRepository) HasExpenses(id int32) (bool, error) {
	if m.Expenses == nil {
		return false, nil
	}
	for _, e := range m.Expenses.Expenses {
		if e.BudgetID == id {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes a budget
func (m *MockBudgetRepository) Delete(owner string, id int32) error {
	budget, ok := m.Budgets[id]
	if !ok || budget.CreatedBy != owner {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	if budget.ID == 0 {
		budget.ID = m.NextID
		m.NextID++
	} else if budget.ID >= m.NextID {
		m.NextID = budget.ID + 1
	}
	m.Budgets[budget.ID] = budget
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[int32]*domain.Expense
	NextID   int32
	CreateFn func(expense *domain.Expense) (*domain.Expense, error)
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[int32]*domain.Expense),
		NextID:   1,
	}
}

// Create creates a new expense. CreatedAt is stored exactly as given,
// like the INSERT in the Postgres repository.
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	if m.CreateFn != nil {
		return m.CreateFn(expense)
	}
	expense.ID = m.NextID
	m.NextID++
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// ListByBudget returns up to limit expenses for the budget, newest first
func (m *MockExpenseRepository) ListByBudget(budgetID int32, limit int32) ([]*domain.Expense, error) {
	result := make([]*domain.Expense, 0)
	for _, e := range m.Expenses {
		if e.BudgetID == budgetID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && int32(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ListByOwner returns all expenses belonging to the owner, newest first
func (m *MockExpenseRepository) ListByOwner(owner string) ([]*domain.Expense, error) {
	result := make([]*domain.Expense, 0)
	for _, e := range m.Expenses {
		if e.CreatedBy == owner {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// CountByBudget counts expenses referencing the budget
func (m *MockExpenseRepository) CountByBudget(budgetID int32) (int64, error) {
	var count int64
	for _, e := range m.Expenses {
		if e.BudgetID == budgetID {
			count++
		}
	}
	return count, nil
}

// Delete removes an expense and returns the deleted record
func (m *MockExpenseRepository) Delete(owner string, id int32) (*domain.Expense, error) {
	expense, ok := m.Expenses[id]
	if !ok || expense.CreatedBy != owner {
		return nil, domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return expense, nil
}

// AddExpense adds an expense to the mock repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) {
	if expense.ID == 0 {
		expense.ID = m.NextID
		m.NextID++
	} else if expense.ID >= m.NextID {
		m.NextID = expense.ID + 1
	}
	m.Expenses[expense.ID] = expense
}

// MockEventRepository is a mock implementation of domain.EventRepository
type MockEventRepository struct {
	Events map[int32]*domain.Event
	NextID int32
}

// NewMockEventRepository creates a new MockEventRepository
func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		Events: make(map[int32]*domain.Event),
		NextID: 1,
	}
}

// Create creates a new event
func (m *MockEventRepository) Create(event *domain.Event) (*domain.Event, error) {
	event.ID = m.NextID
	m.NextID++
	m.Events[event.ID] = event
	return event, nil
}

// ListByOwner returns the owner's events ordered by date then ID
func (m *MockEventRepository) ListByOwner(owner string) ([]*domain.Event, error) {
	result := make([]*domain.Event, 0)
	for _, e := range m.Events {
		if e.CreatedBy == owner {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID < result[j].ID
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// Delete removes an event and returns the deleted record
func (m *MockEventRepository) Delete(owner string, id int32) (*domain.Event, error) {
	event, ok := m.Events[id]
	if !ok || event.CreatedBy != owner {
		return nil, domain.ErrEventNotFound
	}
	delete(m.Events, id)
	return event, nil
}

// AddEvent adds an event to the mock repository (helper for tests)
func (m *MockEventRepository) AddEvent(event *domain.Event) {
	if event.ID == 0 {
		event.ID = m.NextID
		m.NextID++
	} else if event.ID >= m.NextID {
		m.NextID = event.ID + 1
	}
	m.Events[event.ID] = event
}

// PublishedEvent records a single Publish call on MockPublisher
type PublishedEvent struct {
	Owner string
	Event websocket.Event
}

// MockPublisher captures published WebSocket events for assertions
type MockPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// NewMockPublisher creates a new MockPublisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make([]PublishedEvent, 0)}
}

// Publish records the event
func (m *MockPublisher) Publish(owner string, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{Owner: owner, Event: event})
}

// Published returns a copy of the recorded events
func (m *MockPublisher) Published() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]PublishedEvent, len(m.Events))
	copy(copied, m.Events)
	return copied
}

// EventsOfType returns recorded events matching the type
func (m *MockPublisher) EventsOfType(eventType string) []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]PublishedEvent, 0)
	for _, pe := range m.Events {
		if pe.Event.Type == eventType {
			matched = append(matched, pe)
		}
	}
	return matched
}

// MockObjectRepository is an in-memory implementation of storage.ObjectRepository
type MockObjectRepository struct {
	Objects  map[string][]byte
	UploadFn func(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
}

// NewMockObjectRepository creates a new MockObjectRepository
func NewMockObjectRepository() *MockObjectRepository {
	return &MockObjectRepository{
		Objects: make(map[string][]byte),
	}
}

// Upload stores the object in memory and returns its path
func (m *MockObjectRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, objectPath, data, contentType, size)
	}
	content, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.Objects[objectPath] = content
	return objectPath, nil
}

// Delete removes the object
func (m *MockObjectRepository) Delete(ctx context.Context, objectPath string) error {
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a deterministic URL for the stored object
func (m *MockObjectRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	if _, ok := m.Objects[objectPath]; !ok {
		return "", fmt.Errorf("object not found: %s", objectPath)
	}
	return fmt.Sprintf("https://storage.test/%s?expires=%d", objectPath, int64(expiry.Seconds())), nil
}
