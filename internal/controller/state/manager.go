package state

import (
	"errors"
	"sync"
	"time"

	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
)

var ErrNoWeekConfig = errors.New("week config dialog is not active")

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
	now    func() time.Time
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
		now:    time.Now,
	}
}

// entry возвращает запись пользователя, создавая её при необходимости. Вызывать под mu.Lock
func (sm *Manager) entry(telegramID int64) *UserData {
	userData, exists := sm.states[telegramID]
	if !exists {
		userData = newUserData(sm.now())
		sm.states[telegramID] = userData
	}
	userData.UpdatedAt = sm.now()
	return userData
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		// Если состояние None, удаляем запись
		delete(sm.states, telegramID)
		return
	}

	sm.entry(telegramID).State = state
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).Data[key] = value
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// BeginWeekConfig открывает диалог настройки недели. Предыдущий диалог пользователя сбрасывается
func (sm *Manager) BeginWeekConfig(telegramID, trainerID int64, cfg *weekconfig.Config) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData := newUserData(sm.now())
	userData.State = StateWeekConfig
	userData.Data[DataTrainerID] = trainerID
	userData.WeekConfig = cfg.Clone()
	sm.states[telegramID] = userData
}

// WeekConfig возвращает копию настройки недели из открытого диалога
func (sm *Manager) WeekConfig(telegramID int64) (*weekconfig.Config, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	userData, exists := sm.states[telegramID]
	if !exists || userData.WeekConfig == nil {
		return nil, false
	}
	return userData.WeekConfig.Clone(), true
}

// UpdateWeekConfig изменяет настройку недели под блокировкой
func (sm *Manager) UpdateWeekConfig(telegramID int64, fn func(cfg *weekconfig.Config) error) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists || userData.WeekConfig == nil {
		return ErrNoWeekConfig
	}

	if err := fn(userData.WeekConfig); err != nil {
		return err
	}
	userData.UpdatedAt = sm.now()
	return nil
}

// SetMessage запоминает сообщение с клавиатурой диалога
func (sm *Manager) SetMessage(telegramID, chatID int64, messageID int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData := sm.entry(telegramID)
	userData.ChatID = chatID
	userData.MessageID = messageID
}

// Message возвращает сообщение с клавиатурой диалога
func (sm *Manager) Message(telegramID int64) (chatID int64, messageID int, ok bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	userData, exists := sm.states[telegramID]
	if !exists || userData.MessageID == 0 {
		return 0, 0, false
	}
	return userData.ChatID, userData.MessageID, true
}

// Sweep удаляет диалоги без действий дольше maxIdle и возвращает их количество
func (sm *Manager) Sweep(maxIdle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	deadline := sm.now().Add(-maxIdle)
	removed := 0
	for telegramID, userData := range sm.states {
		if userData.UpdatedAt.Before(deadline) {
			delete(sm.states, telegramID)
			removed++
		}
	}
	return removed
}
