package match

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"chessai/internal/chess"
)

var ErrGameNotFound = errors.New("game not found")

// Manager 内存里的对局表，按 id 索引，可并发访问
type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

func (m *Manager) NewGame() *GameState {
	return m.add(chess.NewInitialPosition())
}

// NewGameFromFEN 从任意局面开局
func (m *Manager) NewGameFromFEN(fen string) (*GameState, error) {
	pos, err := chess.DecodePosition(fen)
	if err != nil {
		return nil, err
	}
	return m.add(pos), nil
}

func (m *Manager) add(pos *chess.Position) *GameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		Pos:       pos,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.games[g.ID] = g
	return g
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, ErrGameNotFound)
	}
	return g, nil
}

// Play 校验并走一步，返回走完后的局面（新对象，旧局面不变）
func (m *Manager) Play(id string, mv chess.Move) (*chess.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("play %s: %w", id, ErrGameNotFound)
	}
	if g.Pos.GameOver {
		return nil, fmt.Errorf("play %s on finished game: %w", mv.UCI(), chess.ErrInvalidMove)
	}
	next, ok := g.Pos.ApplyMove(mv)
	if !ok {
		return nil, fmt.Errorf("play %s: %w", mv.UCI(), chess.ErrInvalidMove)
	}
	g.Pos = next
	g.History = append(g.History, mv)
	g.UpdatedAt = time.Now()
	return next, nil
}

// Delete 移除对局；不存在时返回 ErrGameNotFound
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("delete %s: %w", id, ErrGameNotFound)
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
