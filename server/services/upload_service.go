package services

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"retailserver/importer"
	apperrors "retailserver/server/errors"
)

// UploadService принимает CSV-файлы заказов и позиций и регистрирует
// объединённый набор строк в хранилище
type UploadService struct {
	store         *DatasetStore
	maxUploadSize int64
}

// NewUploadService создает сервис загрузки с лимитом размера файла в байтах
func NewUploadService(store *DatasetStore, maxUploadSize int64) *UploadService {
	return &UploadService{store: store, maxUploadSize: maxUploadSize}
}

// readPart читает содержимое multipart-файла с проверкой лимита
func (u *UploadService) readPart(header *multipart.FileHeader) ([]byte, error) {
	if u.maxUploadSize > 0 && header.Size > u.maxUploadSize {
		return nil, apperrors.NewPayloadTooLargeError(
			fmt.Sprintf("файл %s превышает лимит %d байт", header.Filename, u.maxUploadSize), nil)
	}
	file, err := header.Open()
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось открыть загруженный файл", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось прочитать загруженный файл", err)
	}
	return raw, nil
}

// UploadMonth разбирает пару CSV (заказы + позиции), объединяет их и
// сохраняет как новый набор. Возвращает сводку загрузки.
func (u *UploadService) UploadMonth(name string, ordersFile, lineItemsFile *multipart.FileHeader) (map[string]interface{}, error) {
	if ordersFile == nil || lineItemsFile == nil {
		return nil, apperrors.NewValidationError("нужны оба файла: orders и line_items", nil)
	}
	if name == "" {
		name = ordersFile.Filename
	}

	ordersRaw, err := u.readPart(ordersFile)
	if err != nil {
		return nil, err
	}
	itemsRaw, err := u.readPart(lineItemsFile)
	if err != nil {
		return nil, err
	}

	orders, err := importer.ParseCSV(ordersRaw)
	if err != nil {
		return nil, apperrors.NewValidationError("ошибка разбора CSV заказов: "+err.Error(), err)
	}
	lineItems, err := importer.ParseCSV(itemsRaw)
	if err != nil {
		return nil, apperrors.NewValidationError("ошибка разбора CSV позиций: "+err.Error(), err)
	}

	joined, result := importer.JoinOrders(orders, lineItems)
	dataset := u.store.Put(name, joined, result)

	log.Printf("[Upload] Dataset %s: %d line items, %d orphaned", dataset.ID, result.Success, result.Orphaned)

	return map[string]interface{}{
		"dataset_id": dataset.ID,
		"name":       dataset.Name,
		"import":     result,
	}, nil
}

// UploadCatalog разбирает одиночный CSV каталога товаров и сохраняет
// его как набор без объединения с заказами
func (u *UploadService) UploadCatalog(name string, catalogFile *multipart.FileHeader) (map[string]interface{}, error) {
	if catalogFile == nil {
		return nil, apperrors.NewValidationError("файл каталога обязателен", nil)
	}
	if name == "" {
		name = catalogFile.Filename
	}

	raw, err := u.readPart(catalogFile)
	if err != nil {
		return nil, err
	}
	rows, err := importer.ParseCSV(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("ошибка разбора CSV каталога: "+err.Error(), err)
	}

	dataset := u.store.Put(name, rows, nil)
	return map[string]interface{}{
		"dataset_id": dataset.ID,
		"name":       dataset.Name,
		"rows":       len(rows),
	}, nil
}
