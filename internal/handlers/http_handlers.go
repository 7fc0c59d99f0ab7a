package handlers

import (
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"raffle/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

// HTTPHandler holds the dependencies for the HTTP handlers.
type HTTPHandler struct {
	store  *services.Store
	raffle *services.RaffleEngine
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(store *services.Store, raffle *services.RaffleEngine) *HTTPHandler {
	return &HTTPHandler{
		store:  store,
		raffle: raffle,
	}
}

// RegisterRoutes registers all the application routes.
func (h *HTTPHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.Health)

	promos := router.Group("/promo")
	promos.GET("", h.ListPromos)
	promos.POST("", h.CreatePromo)
	promos.GET("/:promoId", h.GetPromo)
	promos.PUT("/:promoId", h.UpdatePromo)
	promos.DELETE("/:promoId", h.DeletePromo)

	promos.POST("/:promoId/participant", h.AddParticipant)
	promos.DELETE("/:promoId/participant/:participantId", h.RemoveParticipant)
	promos.POST("/:promoId/participants/import", h.ImportParticipantsCSV)

	promos.POST("/:promoId/prize", h.AddPrize)
	promos.DELETE("/:promoId/prize/:prizeId", h.RemovePrize)
	promos.POST("/:promoId/prizes/import", h.ImportPrizesCSV)

	promos.POST("/:promoId/raffle", h.Raffle)
}

// Health reports liveness plus registry sizes.
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "stats": h.store.Stats()})
}

// ListPromos handles GET /promo
func (h *HTTPHandler) ListPromos(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListPromos())
}

// CreatePromo handles POST /promo
func (h *HTTPHandler) CreatePromo(c *gin.Context) {
	var req createPromoRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.store.CreatePromo(req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, id)
}

// GetPromo handles GET /promo/:promoId
func (h *HTTPHandler) GetPromo(c *gin.Context) {
	promoID, ok := pathID(c, "promoId")
	if !ok {
		return
	}
	promo, err := h.store.GetFullPromo(promoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, promo)
}

// UpdatePromo handles PUT /promo/:promoId
func (h *HTTPHandler) UpdatePromo(c *gin.Context) {
	promoID, ok := pathID(c, "promoId")
	if !ok {
		return
	}
	// Both fields are optional, so an empty body is a valid no-op update.
	var req updatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	promo, err := h.store.UpdatePromo(promoID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, promo.Summary())
}

// DeletePromo handles DELETE /promo/:promoId
func (h *HTTPHandler) DeletePromo(c *gin.Context) {
	promoID, ok := pathID(c, "promoId")
	if !ok {
		return
	}
	if err := h.store.DeletePromo(promoID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, "OK")
}

// AddParticipant handles POST /promo/:promoId/participant
func (h *HTTPHandler) AddParticipant(c *gin.Context) {
	promoID, ok := pathID(c, "promoId")
	if !ok {
		return
	}
	var req addParticipantRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.store.AddParticipant(promoID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, id)
}

// RemoveParticipant handles DELETE /promo/:promoId/participant/:participantId
func (h *HTTPHandler) RemoveParticipant(c *gin.Context) {
	promoID, ok := pathID(c, "promoId")
	if !ok {
		return
	}
	participantID, ok := pathID(c, "participantId")
	if !ok {
		return
	}
	if err := h.store.RemoveParticipant(promoID, participantID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, "OK")
}

// AddPrize handles POST /promo/:promoId/prize
func (h *HTTPHandler) AddPrize(c *gin.Context) {
	promoID, ok := pathID(c, "promoId")
	if !ok {
		return
	}
	var req addPrizeRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.store.AddPrize(promoID, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, id)
}

// RemovePrize handles DELETE /promo/:promoId/prize/:prizeId
func (h *HTTPHandler) RemovePrize(c *gin.Context) {
	promoID, ok := pathID(c, "promoId")
	if !ok {
		return
	}
	prizeID, ok := pathID(c, "prizeId")
	if !ok {
		return
	}
	if err := h.store.RemovePrize(promoID, prizeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, "OK")
}

// ImportParticipantsCSV handles the CSV upload for participants.
// The first column of each row is the participant's name.
func (h *HTTPHandler) ImportParticipantsCSV(c *gin.Context) {
	promoID, ok := pathID(c, "promoId")
	if !ok {
		return
	}
	names, ok := readFirstColumn(c)
	if !ok {
		return
	}
	ids, err := h.store.ImportParticipants(promoID, names)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

// ImportPrizesCSV handles the CSV upload for prizes.
// The first column of each row is the prize description.
func (h *HTTPHandler) ImportPrizesCSV(c *gin.Context) {
	promoID, ok := pathID(c, "promoId")
	if !ok {
		return
	}
	descriptions, ok := readFirstColumn(c)
	if !ok {
		return
	}
	ids, err := h.store.ImportPrizes(promoID, descriptions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

// Raffle handles POST /promo/:promoId/raffle. With ?format=csv the pairing
// is returned as a CSV download instead of JSON.
func (h *HTTPHandler) Raffle(c *gin.Context) {
	promoID, ok := pathID(c, "promoId")
	if !ok {
		return
	}
	results, err := h.raffle.Raffle(promoID)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Infof("Raffle for promo %d drew %d pairs", promoID, len(results))

	if c.Query("format") != "csv" {
		c.JSON(http.StatusOK, results)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=raffle_promo_"+strconv.Itoa(promoID)+".csv")

	// Add BOM to ensure UTF-8 compatibility in Excel
	c.Writer.Write([]byte("\xef\xbb\xbf"))

	w := csv.NewWriter(c.Writer)
	if err := w.Write([]string{"participant_id", "participant_name", "prize_id", "prize_description"}); err != nil {
		logger.Errorf("Error writing CSV header: %v", err)
		return
	}
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.Winner.ID), r.Winner.Name,
			strconv.Itoa(r.Prize.ID), r.Prize.Description,
		}
		if err := w.Write(row); err != nil {
			logger.Errorf("Error writing CSV row: %v", err)
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Errorf("Error flushing CSV writer: %v", err)
	}
}

// readFirstColumn reads the multipart "file" field as CSV and returns the
// first column of every row. Empty rows are skipped.
func readFirstColumn(c *gin.Context) ([]string, bool) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Error retrieving file: "+err.Error())
		return nil, false
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var values []string
	for first := true; ; first = false {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "Error reading CSV: "+err.Error())
			return nil, false
		}
		// Spreadsheet exports, including our own raffle CSV, start with a BOM.
		if first && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
		}
		if len(record) == 0 || record[0] == "" {
			logger.Infof("Skipping empty CSV record: %v", record)
			continue
		}
		values = append(values, record[0])
	}
	return values, true
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid "+name+": "+c.Param(name))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// respondError maps core failures to transport status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondMessage(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUnavailable):
		respondMessage(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		respondMessage(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		logger.Errorf("Unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		respondMessage(c, http.StatusInternalServerError, "internal error")
	}
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
