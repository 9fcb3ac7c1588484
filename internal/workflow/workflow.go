// Package workflow implements the seven-step report submission wizard.
// Each conversation owns exactly one session: a current state plus the
// typed draft collected so far, kept in a store keyed by chat id with an
// explicit begin/clear lifecycle. The host transport delivers one update
// per chat at a time, so a session is never advanced concurrently.
package workflow

import (
	"errors"
	"sync"
	"time"

	"go-report-bot/internal/database"
	"go-report-bot/internal/models"
	"go-report-bot/internal/report"
)

// State is the wizard position for one conversation.
type State int

const (
	StateIdle State = iota
	StateTotalIncome
	StateCash
	StateCashless
	StateCashBalance
	StateClientsCount
	StateCashToSuppliers
	StateCashlessToSuppliers
	StateSummary
)

// Field returns the report field an Awaiting state collects.
func (s State) Field() report.Field {
	if s < StateTotalIncome || s > StateCashlessToSuppliers {
		return ""
	}
	return report.Order[int(s)-int(StateTotalIncome)]
}

// Awaiting reports whether the state expects a field value.
func (s State) Awaiting() bool {
	return s >= StateTotalIncome && s <= StateCashlessToSuppliers
}

var (
	ErrNoSession   = errors.New("no active report session for this chat")
	ErrNotAwaiting = errors.New("session is not waiting for a field value")
	ErrNotSummary  = errors.New("session is not at the summary step")
)

type session struct {
	state State
	draft report.Draft
}

// Manager owns all in-flight report sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*session
	loc      *time.Location
	now      func() time.Time
}

func NewManager(loc *time.Location) *Manager {
	m := &Manager{
		sessions: make(map[int64]*session),
		loc:      loc,
	}
	m.now = func() time.Time { return time.Now().In(m.loc) }
	return m
}

// Begin starts (or restarts) the wizard for a chat and returns the first
// field to prompt for.
func (m *Manager) Begin(chatID int64) report.Field {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = &session{state: StateTotalIncome}
	return StateTotalIncome.Field()
}

// State returns the chat's current wizard state (StateIdle if none).
func (m *Manager) State(chatID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[chatID]; ok {
		return s.state
	}
	return StateIdle
}

// Draft returns a copy of the collected values, or nil without a session.
func (m *Manager) Draft(chatID int64) *report.Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[chatID]; ok {
		draft := s.draft
		return &draft
	}
	return nil
}

// StepResult tells the caller what happened to one field input.
type StepResult struct {
	// Invalid is set when the value was rejected; the state is unchanged
	// and the same field should be prompted again.
	Invalid error
	// Discarded is set when the completed set failed cross-validation;
	// the whole session was dropped and the wizard must be started over.
	Discarded error
	// SummaryReached is true once all seven fields validated as a set.
	SummaryReached bool
	// Next is the field to prompt for when the wizard advanced.
	Next report.Field
}

// Input feeds one raw value into the chat's current Awaiting state.
func (m *Manager) Input(chatID int64, raw string) (StepResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return StepResult{}, ErrNoSession
	}
	if !s.state.Awaiting() {
		return StepResult{}, ErrNotAwaiting
	}

	field := s.state.Field()
	if field == report.FieldClientsCount {
		count, err := report.ValidateCount(raw)
		if err != nil {
			return StepResult{Invalid: err}, nil
		}
		s.draft.SetCount(count)
	} else {
		amount, err := report.ValidateAmount(raw)
		if err != nil {
			return StepResult{Invalid: err}, nil
		}
		s.draft.SetAmount(field, amount)
	}

	if s.state == StateCashlessToSuppliers {
		// Last field collected: the set must hold together before we
		// show the summary. A failure here is all-or-nothing.
		if err := report.ValidateDraft(&s.draft); err != nil {
			delete(m.sessions, chatID)
			return StepResult{Discarded: err}, nil
		}
		s.state = StateSummary
		return StepResult{SummaryReached: true}, nil
	}

	s.state++
	return StepResult{Next: s.state.Field()}, nil
}

// Cancel drops the chat's session. Returns false if there was none.
func (m *Manager) Cancel(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[chatID]; !ok {
		return false
	}
	delete(m.sessions, chatID)
	return true
}

// Edit returns the wizard to the first field keeping the collected values;
// re-entered values overwrite field by field.
func (m *Manager) Edit(chatID int64) (report.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok {
		return "", ErrNoSession
	}
	if s.state != StateSummary {
		return "", ErrNotSummary
	}
	s.state = StateTotalIncome
	return s.state.Field(), nil
}

// Restart clears the collected values and returns to the first field.
func (m *Manager) Restart(chatID int64) (report.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok {
		return "", ErrNoSession
	}
	if s.state != StateSummary {
		return "", ErrNotSummary
	}
	s.draft = report.Draft{}
	s.state = StateTotalIncome
	return s.state.Field(), nil
}

// Send persists the confirmed draft as a new report version. On storage
// failure the session is kept at Summary so the user can retry the send
// without recollecting the fields; on success it is cleared.
func (m *Manager) Send(chatID int64, employee *models.Employee) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return nil, ErrNoSession
	}
	if s.state != StateSummary {
		return nil, ErrNotSummary
	}

	now := m.now()
	version := 1
	existing, err := database.GetTodayReportFor(employee.ID, now)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		version = existing.Version + 1
	}

	rec := &models.Report{
		ReportDate:          now,
		TotalIncome:         *s.draft.TotalIncome,
		Cash:                *s.draft.Cash,
		Cashless:            *s.draft.Cashless,
		CashBalance:         *s.draft.CashBalance,
		ClientsCount:        *s.draft.ClientsCount,
		CashToSuppliers:     *s.draft.CashToSuppliers,
		CashlessToSuppliers: *s.draft.CashlessToSuppliers,
		Version:             version,
		EmployeeID:          employee.ID,
		BranchID:            employee.BranchID,
	}
	if err := database.CreateReport(rec); err != nil {
		return nil, err
	}

	delete(m.sessions, chatID)
	return rec, nil
}
