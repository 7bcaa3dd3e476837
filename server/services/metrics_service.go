package services

import (
	"retailserver/calculations"
	apperrors "retailserver/server/errors"
)

// MetricsService строит метрические и KPI-отчёты по набору строк.
// Сервис без состояния: каждый вызов пересчитывает метрики заново по
// переданным строкам.
type MetricsService struct {
	store *DatasetStore
}

// NewMetricsService создает сервис метрик поверх хранилища наборов
func NewMetricsService(store *DatasetStore) *MetricsService {
	return &MetricsService{store: store}
}

// rows возвращает строки набора по ID
func (m *MetricsService) rows(datasetID string) ([]calculations.Row, error) {
	dataset, err := m.store.Get(datasetID)
	if err != nil {
		return nil, err
	}
	return dataset.LineItems, nil
}

// Overview сводные показатели набора
func (m *MetricsService) Overview(datasetID string) (map[string]interface{}, error) {
	rows, err := m.rows(datasetID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"total_revenue":       calculations.TotalRevenue(rows),
		"total_units":         calculations.TotalUnits(rows),
		"total_orders":        calculations.TotalOrders(rows),
		"average_order_value": calculations.AverageOrderValue(rows),
		"average_order_size":  calculations.AverageOrderSize(rows),
		"line_items":          len(rows),
	}, nil
}

// Revenue раскладка выручки по измерению
func (m *MetricsService) Revenue(datasetID, dimension string) (map[string]interface{}, error) {
	rows, err := m.rows(datasetID)
	if err != nil {
		return nil, err
	}

	var breakdown []calculations.Row
	switch dimension {
	case "", "product":
		breakdown = calculations.RevenueByProduct(rows)
	case "channel":
		breakdown = calculations.RevenueByChannel(rows)
	case "associate":
		breakdown = calculations.RevenueByAssociate(rows)
	case "date":
		breakdown = calculations.RevenueByDate(rows)
	default:
		return nil, apperrors.NewValidationError("неизвестное измерение: "+dimension, nil)
	}

	return map[string]interface{}{
		"dimension": dimension,
		"rows":      breakdown,
	}, nil
}

// AttachRate attach rate товара, сырой и нормализованный к доле.
// Сырой результат наследует несовпадение шкал: доля 0-1 без
// референсных товаров, проценты 0-100 с ними.
func (m *MetricsService) AttachRate(datasetID, product string, references []string) (map[string]interface{}, error) {
	if product == "" {
		return nil, apperrors.NewValidationError("товар обязателен", nil)
	}
	rows, err := m.rows(datasetID)
	if err != nil {
		return nil, err
	}
	scale := "fraction"
	if len(references) > 0 {
		scale = "percent"
	}
	return map[string]interface{}{
		"product":            product,
		"reference_products": references,
		"attach_rate":        calculations.AttachRate(rows, product, references),
		"attach_rate_scale":  scale,
		"fraction":           calculations.AttachRateFraction(rows, product, references),
	}, nil
}

// Velocity скорость продаж набора или отдельных товаров
func (m *MetricsService) Velocity(datasetID string, days float64, perProduct bool) (map[string]interface{}, error) {
	rows, err := m.rows(datasetID)
	if err != nil {
		return nil, err
	}
	payload := map[string]interface{}{
		"days":     days,
		"velocity": calculations.Velocity(rows, days),
	}
	if perProduct {
		payload["products"] = calculations.ProductVelocity(rows, days)
	}
	return payload, nil
}

// CrossSell кросс-продажи пары товаров
func (m *MetricsService) CrossSell(datasetID, anchor, companion string) (map[string]interface{}, error) {
	if anchor == "" || companion == "" {
		return nil, apperrors.NewValidationError("нужны оба товара пары", nil)
	}
	rows, err := m.rows(datasetID)
	if err != nil {
		return nil, err
	}
	return calculations.CrossSellLift(rows, anchor, companion), nil
}

// Concentration концентрация выручки на топ-N товарах
func (m *MetricsService) Concentration(datasetID string, topN int) (map[string]interface{}, error) {
	rows, err := m.rows(datasetID)
	if err != nil {
		return nil, err
	}
	return calculations.RevenueConcentration(rows, topN), nil
}

// Growth сравнение выручки двух наборов (текущий и предыдущий периоды)
func (m *MetricsService) Growth(currentID, previousID string) (map[string]interface{}, error) {
	current, err := m.rows(currentID)
	if err != nil {
		return nil, err
	}
	previous, err := m.rows(previousID)
	if err != nil {
		return nil, err
	}
	growth := calculations.RevenueGrowth(current, previous)
	return map[string]interface{}{
		"current_dataset":  currentID,
		"previous_dataset": previousID,
		"growth":           growth,
	}, nil
}

// ChannelEfficiency эффективность каналов продаж
func (m *MetricsService) ChannelEfficiency(datasetID string) (map[string]interface{}, error) {
	rows, err := m.rows(datasetID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"channels": calculations.ChannelEfficiency(rows),
	}, nil
}
