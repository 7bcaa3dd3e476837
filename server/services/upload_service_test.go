package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	apperrors "retailserver/server/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFileHeader собирает multipart.FileHeader с заданным содержимым,
// как это делает реальная форма загрузки
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

const uploadOrdersCSV = "order_id,date,channel\n" +
	"o1,2024-01-15,Store\n" +
	"o2,2024-01-16,Online\n"

const uploadItemsCSV = "order_id,title,quantity,discounted_price\n" +
	"o1,Jacket,1,100\n" +
	"o1,Scarf,1,20\n" +
	"o3,Gloves,1,15\n"

// TestUploadMonth_Success проверяет объединение заказов и позиций при загрузке
func TestUploadMonth_Success(t *testing.T) {
	store := NewDatasetStore()
	svc := NewUploadService(store, 1<<20)

	orders := makeFileHeader(t, "orders.csv", []byte(uploadOrdersCSV))
	items := makeFileHeader(t, "items.csv", []byte(uploadItemsCSV))

	payload, err := svc.UploadMonth("Январь", orders, items)
	require.NoError(t, err)

	datasetID, ok := payload["dataset_id"].(string)
	require.True(t, ok, "dataset_id должен быть строкой")
	assert.Equal(t, "Январь", payload["name"])

	dataset, err := store.Get(datasetID)
	require.NoError(t, err)
	assert.Len(t, dataset.LineItems, 3)

	// позиция o3 не имеет заказа и считается осиротевшей
	require.NotNil(t, dataset.ImportResult)
	assert.Equal(t, 2, dataset.ImportResult.Success)
	assert.Equal(t, 1, dataset.ImportResult.Orphaned)

	// строки o1 обогащаются полями заказа
	first := dataset.LineItems[0]
	assert.Equal(t, "Store", first["channel"])
	assert.Equal(t, "2024-01-15", first["date"])
}

// TestUploadMonth_DefaultName проверяет имя набора по имени файла
func TestUploadMonth_DefaultName(t *testing.T) {
	store := NewDatasetStore()
	svc := NewUploadService(store, 0)

	orders := makeFileHeader(t, "march.csv", []byte(uploadOrdersCSV))
	items := makeFileHeader(t, "items.csv", []byte(uploadItemsCSV))

	payload, err := svc.UploadMonth("", orders, items)
	require.NoError(t, err)
	assert.Equal(t, "march.csv", payload["name"])
}

// TestUploadMonth_MissingFile проверяет ошибку валидации без одного из файлов
func TestUploadMonth_MissingFile(t *testing.T) {
	svc := NewUploadService(NewDatasetStore(), 0)

	orders := makeFileHeader(t, "orders.csv", []byte(uploadOrdersCSV))
	_, err := svc.UploadMonth("Январь", orders, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
}

// TestUploadMonth_TooLarge проверяет лимит размера файла
func TestUploadMonth_TooLarge(t *testing.T) {
	svc := NewUploadService(NewDatasetStore(), 16)

	orders := makeFileHeader(t, "orders.csv", []byte(uploadOrdersCSV))
	items := makeFileHeader(t, "items.csv", []byte(uploadItemsCSV))

	_, err := svc.UploadMonth("Январь", orders, items)
	require.Error(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apperrors.StatusOf(err))
}

// TestUploadCatalog проверяет загрузку каталога одним файлом
func TestUploadCatalog(t *testing.T) {
	store := NewDatasetStore()
	svc := NewUploadService(store, 1<<20)

	catalog := makeFileHeader(t, "catalog.csv", []byte("title,price\nCanvas Jacket,120\nWool Scarf,40\n"))

	payload, err := svc.UploadCatalog("Каталог", catalog)
	require.NoError(t, err)
	assert.Equal(t, 2, payload["rows"])

	datasetID := payload["dataset_id"].(string)
	dataset, err := store.Get(datasetID)
	require.NoError(t, err)
	assert.Len(t, dataset.LineItems, 2)
	assert.Nil(t, dataset.ImportResult)

	_, err = svc.UploadCatalog("пусто", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
}
