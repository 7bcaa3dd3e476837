package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"retailserver/discovery"
	"retailserver/discovery/questions"
	"retailserver/export"
	"retailserver/grouping"
	apperrors "retailserver/server/errors"
)

// respondError отдает клиенту JSON с безопасным сообщением и статусом AppError
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.StatusOf(err), gin.H{
		"success": false,
		"error":   apperrors.MessageOf(err),
	})
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// --- Загрузка данных ---

func (s *Server) handleUploadMonth(c *gin.Context) {
	name := c.PostForm("name")
	ordersFile, err := c.FormFile("orders")
	if err != nil {
		respondError(c, apperrors.NewValidationError("файл orders обязателен", err))
		return
	}
	itemsFile, err := c.FormFile("line_items")
	if err != nil {
		respondError(c, apperrors.NewValidationError("файл line_items обязателен", err))
		return
	}
	payload, err := s.upload.UploadMonth(name, ordersFile, itemsFile)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

func (s *Server) handleUploadCatalog(c *gin.Context) {
	name := c.PostForm("name")
	catalogFile, err := c.FormFile("catalog")
	if err != nil {
		respondError(c, apperrors.NewValidationError("файл catalog обязателен", err))
		return
	}
	payload, err := s.upload.UploadCatalog(name, catalogFile)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

func (s *Server) handleListDatasets(c *gin.Context) {
	respondOK(c, gin.H{"datasets": s.datasets.List()})
}

func (s *Server) handleDeleteDataset(c *gin.Context) {
	if err := s.datasets.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": c.Param("id")})
}

// --- Метрики ---

type datasetRequest struct {
	DatasetID string `json:"dataset_id" binding:"required"`
}

func (s *Server) handleMetricsOverview(c *gin.Context) {
	var req datasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}
	payload, err := s.metrics.Overview(req.DatasetID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

func (s *Server) handleMetricsRevenue(c *gin.Context) {
	var req struct {
		DatasetID string `json:"dataset_id" binding:"required"`
		Dimension string `json:"dimension"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}
	payload, err := s.metrics.Revenue(req.DatasetID, req.Dimension)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

func (s *Server) handleMetricsAttachRate(c *gin.Context) {
	var req struct {
		DatasetID  string   `json:"dataset_id" binding:"required"`
		Product    string   `json:"product" binding:"required"`
		References []string `json:"reference_products"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}
	payload, err := s.metrics.AttachRate(req.DatasetID, req.Product, req.References)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

func (s *Server) handleMetricsVelocity(c *gin.Context) {
	var req struct {
		DatasetID  string  `json:"dataset_id" binding:"required"`
		Days       float64 `json:"days"`
		PerProduct bool    `json:"per_product"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}
	payload, err := s.metrics.Velocity(req.DatasetID, req.Days, req.PerProduct)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

func (s *Server) handleMetricsCrossSell(c *gin.Context) {
	var req struct {
		DatasetID string `json:"dataset_id" binding:"required"`
		Anchor    string `json:"anchor" binding:"required"`
		Companion string `json:"companion" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}
	payload, err := s.metrics.CrossSell(req.DatasetID, req.Anchor, req.Companion)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

func (s *Server) handleMetricsConcentration(c *gin.Context) {
	var req struct {
		DatasetID string `json:"dataset_id" binding:"required"`
		TopN      int    `json:"top_n"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}
	payload, err := s.metrics.Concentration(req.DatasetID, req.TopN)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

func (s *Server) handleMetricsGrowth(c *gin.Context) {
	var req struct {
		CurrentID  string `json:"current_dataset" binding:"required"`
		PreviousID string `json:"previous_dataset" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}
	payload, err := s.metrics.Growth(req.CurrentID, req.PreviousID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

func (s *Server) handleMetricsChannels(c *gin.Context) {
	var req datasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}
	payload, err := s.metrics.ChannelEfficiency(req.DatasetID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

// --- Группировка вариантов ---

func (s *Server) handleGroupProducts(c *gin.Context) {
	var req struct {
		DatasetID string          `json:"dataset_id" binding:"required"`
		Flatten   string          `json:"flatten"`
		Config    grouping.Config `json:"config"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}
	payload, err := s.grouping.GroupProducts(req.DatasetID, req.Flatten, req.Config)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

// --- Обнаружение паттернов ---

func (s *Server) handleCreateDiscoverySession(c *gin.Context) {
	var req struct {
		Config discovery.Config `json:"config"`
	}
	// Тело опционально: без него используется конфигурация по умолчанию
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}
	respondOK(c, s.discovery.CreateSession(req.Config))
}

func (s *Server) handleRunDiscovery(c *gin.Context) {
	var req struct {
		SessionID string                    `json:"session_id" binding:"required"`
		DatasetID string                    `json:"dataset_id"`
		Products  []discovery.ProductRecord `json:"products"`
		Pass      int                       `json:"pass"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}

	products := req.Products
	if len(products) == 0 && req.DatasetID != "" {
		dataset, err := s.datasets.Get(req.DatasetID)
		if err != nil {
			respondError(c, err)
			return
		}
		products = dataset.LineItems
	}
	if len(products) == 0 {
		respondError(c, apperrors.NewValidationError("нужен dataset_id или products", nil))
		return
	}

	payload, err := s.discovery.RunDiscovery(req.SessionID, products, req.Pass)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

func (s *Server) handleDiscoveryPasses(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		respondError(c, apperrors.NewValidationError("параметр session_id обязателен", nil))
		return
	}
	payload, err := s.discovery.GetPasses(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, payload)
}

// --- Вопросы второго уровня ---

func (s *Server) handleGenerateQuestions(c *gin.Context) {
	var req struct {
		SessionID    string                   `json:"session_id" binding:"required"`
		Pattern      *discovery.RankedPattern `json:"pattern" binding:"required"`
		Combinations []questions.Combination  `json:"combinations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}
	set, err := s.discovery.GenerateQuestions(req.SessionID, req.Pattern, req.Combinations)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, set)
}

func (s *Server) handleQuestionResponse(c *gin.Context) {
	var req struct {
		SessionID string                 `json:"session_id" binding:"required"`
		PatternID string                 `json:"pattern_id" binding:"required"`
		Responses map[string]interface{} `json:"responses" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}
	result, err := s.discovery.ProcessResponse(req.SessionID, req.PatternID, req.Responses)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

// --- Экспорт ---

func (s *Server) handleExportPatterns(c *gin.Context) {
	var req struct {
		SessionID string                    `json:"session_id"`
		Patterns  []discovery.RankedPattern `json:"patterns"`
		Format    string                    `json:"format"`
		Filename  string                    `json:"filename" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("некорректный запрос: "+err.Error(), err))
		return
	}

	patterns := req.Patterns
	if len(patterns) == 0 && req.SessionID != "" {
		latest, err := s.discovery.LatestPatterns(req.SessionID)
		if err != nil {
			respondError(c, err)
			return
		}
		patterns = latest
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		respondError(c, apperrors.NewValidationError(err.Error(), err))
		return
	}
	if err := export.ExportPatterns(req.Filename, format, patterns); err != nil {
		respondError(c, apperrors.NewInternalError("ошибка экспорта паттернов", err))
		return
	}
	respondOK(c, gin.H{
		"filename": req.Filename,
		"format":   string(format),
		"patterns": len(patterns),
	})
}
