package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"retailserver/discovery"
	"retailserver/discovery/questions"
	apperrors "retailserver/server/errors"
)

// discoverySession изолированная сессия обнаружения: собственный движок
// и собственный генератор анкет с обучаемым состоянием. Движок требует
// сериализации вызовов, поэтому сессия держит мьютекс.
type discoverySession struct {
	mu        sync.Mutex
	engine    *discovery.Engine
	generator *questions.Generator
	createdAt time.Time
}

// DiscoveryService сервис сессий обнаружения паттернов
type DiscoveryService struct {
	mu       sync.RWMutex
	sessions map[string]*discoverySession
}

// NewDiscoveryService создает сервис с пустым списком сессий
func NewDiscoveryService() *DiscoveryService {
	return &DiscoveryService{
		sessions: make(map[string]*discoverySession),
	}
}

// CreateSession создает изолированную сессию с заданной конфигурацией.
// Нулевые поля конфигурации заменяются значениями по умолчанию.
func (s *DiscoveryService) CreateSession(cfg discovery.Config) map[string]interface{} {
	session := &discoverySession{
		engine:    discovery.NewEngine(cfg),
		generator: questions.NewGenerator(),
		createdAt: time.Now(),
	}
	sessionID := uuid.New().String()

	s.mu.Lock()
	s.sessions[sessionID] = session
	s.mu.Unlock()

	log.Printf("[Discovery] Session %s created", sessionID)

	return map[string]interface{}{
		"session_id": sessionID,
		"config":     session.engine.Config(),
		"created_at": session.createdAt,
	}
}

// session возвращает сессию по ID
func (s *DiscoveryService) session(sessionID string) (*discoverySession, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("сессия обнаружения не найдена", nil)
	}
	return session, nil
}

// RunDiscovery выполняет проход обнаружения по каталогу в рамках сессии.
// Вызовы по одной сессии сериализуются; параллельные сессии независимы.
func (s *DiscoveryService) RunDiscovery(sessionID string, products []discovery.ProductRecord, pass int) (map[string]interface{}, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if pass > 0 {
		session.engine.SetPass(pass)
	}
	patterns := session.engine.DiscoverPatterns(products)

	return map[string]interface{}{
		"session_id":    sessionID,
		"pass":          session.engine.CurrentPass(),
		"product_count": len(products),
		"patterns":      patterns,
	}, nil
}

// GetPasses возвращает сохранённые результаты всех проходов сессии
func (s *DiscoveryService) GetPasses(sessionID string) (map[string]interface{}, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	results := make([]*discovery.PassResult, 0)
	for _, pass := range session.engine.Passes() {
		if result, ok := session.engine.PassResult(pass); ok {
			results = append(results, result)
		}
	}
	return map[string]interface{}{
		"session_id":   sessionID,
		"current_pass": session.engine.CurrentPass(),
		"passes":       results,
	}, nil
}

// LatestPatterns возвращает паттерны последнего завершённого прохода
func (s *DiscoveryService) LatestPatterns(sessionID string) ([]discovery.RankedPattern, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	passes := session.engine.Passes()
	if len(passes) == 0 {
		return nil, nil
	}
	result, ok := session.engine.PassResult(passes[len(passes)-1])
	if !ok {
		return nil, nil
	}
	return result.Patterns, nil
}

// GenerateQuestions собирает анкету второго слоя по паттерну сессии
func (s *DiscoveryService) GenerateQuestions(sessionID string, pattern *discovery.RankedPattern, combos []questions.Combination) (*questions.QuestionSet, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	set, err := session.generator.GenerateQuestions(pattern, combos)
	if err != nil {
		return nil, apperrors.NewValidationError("не удалось собрать анкету", err)
	}
	return set, nil
}

// ProcessResponse обрабатывает ответы на анкету и обновляет обучаемые
// таблицы сессии
func (s *DiscoveryService) ProcessResponse(sessionID, patternID string, responses map[string]interface{}) (*questions.ResponseResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	return session.generator.ProcessResponse(patternID, responses), nil
}

// ExportSession сохраняет состояние движка сессии в JSON-файл
func (s *DiscoveryService) ExportSession(sessionID, filename string) error {
	session, err := s.session(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.engine.ExportState(filename); err != nil {
		return apperrors.NewInternalError("не удалось сохранить состояние сессии", err)
	}
	return nil
}
