package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"retailserver/calculations"
	"retailserver/importer"
	apperrors "retailserver/server/errors"
)

// Dataset загруженный в память набор соединённых строк заказов.
// Единственное хранилище наборов - оперативная память процесса:
// долговременного хранения у ядра нет.
type Dataset struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	LineItems    []calculations.Row     `json:"-"`
	ImportResult *importer.ImportResult `json:"import_result,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// DatasetStore потокобезопасное хранилище наборов данных
type DatasetStore struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
}

// NewDatasetStore создает пустое хранилище наборов
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{
		datasets: make(map[string]*Dataset),
	}
}

// Put сохраняет набор и возвращает его с присвоенным ID
func (s *DatasetStore) Put(name string, lineItems []calculations.Row, result *importer.ImportResult) *Dataset {
	dataset := &Dataset{
		ID:           uuid.New().String(),
		Name:         name,
		LineItems:    lineItems,
		ImportResult: result,
		CreatedAt:    time.Now(),
	}
	s.mu.Lock()
	s.datasets[dataset.ID] = dataset
	s.mu.Unlock()
	return dataset
}

// Get возвращает набор по ID
func (s *DatasetStore) Get(id string) (*Dataset, error) {
	s.mu.RLock()
	dataset, ok := s.datasets[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("набор данных не найден", nil)
	}
	return dataset, nil
}

// Delete удаляет набор по ID
func (s *DatasetStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return apperrors.NewNotFoundError("набор данных не найден", nil)
	}
	delete(s.datasets, id)
	return nil
}

// List возвращает сводку по всем наборам, новые первыми
func (s *DatasetStore) List() []map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]map[string]interface{}, 0, len(s.datasets))
	for _, dataset := range s.datasets {
		list = append(list, map[string]interface{}{
			"id":         dataset.ID,
			"name":       dataset.Name,
			"line_items": len(dataset.LineItems),
			"created_at": dataset.CreatedAt,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i]["created_at"].(time.Time).After(list[j]["created_at"].(time.Time))
	})
	return list
}
