package services

import (
	"retailserver/calculations"
	"retailserver/grouping"
	apperrors "retailserver/server/errors"
)

// GroupingService строит иерархию товар → цвет → размер по набору строк
type GroupingService struct {
	store *DatasetStore
}

// NewGroupingService создает сервис группировки вариантов
func NewGroupingService(store *DatasetStore) *GroupingService {
	return &GroupingService{store: store}
}

// GroupProducts собирает конфигурацию вариантов и, по запросу,
// плоские представления по цвету или размеру
func (g *GroupingService) GroupProducts(datasetID, flatten string, cfg grouping.Config) (map[string]interface{}, error) {
	dataset, err := g.store.Get(datasetID)
	if err != nil {
		return nil, err
	}

	config := grouping.GenerateProductConfig(dataset.LineItems, cfg)
	payload := map[string]interface{}{
		"dataset_id":     datasetID,
		"product_config": config,
		"total_products": len(config.Products),
	}

	switch flatten {
	case "":
		// только иерархия
	case "color":
		payload["flat_rows"] = grouping.FlattenColorFirst(config)
	case "size":
		payload["flat_rows"] = grouping.FlattenSizeFirst(dataset.LineItems, cfg)
	default:
		return nil, apperrors.NewValidationError("неизвестный режим flatten: "+flatten, nil)
	}
	return payload, nil
}

// GroupRows группирует произвольные строки без сохранённого набора
func (g *GroupingService) GroupRows(rows []calculations.Row, cfg grouping.Config) *grouping.ProductConfig {
	return grouping.GenerateProductConfig(rows, cfg)
}
