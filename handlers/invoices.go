package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yourusername/billing-console/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewInvoiceHandler(db *gorm.DB, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		db:  db,
		log: log,
	}
}

type InvoiceItemRequest struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
}

type CreateInvoiceRequest struct {
	CustomerID string               `json:"customer_id" binding:"required,uuid"`
	Items      []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	DueDate    string               `json:"due_date"`
}

type UpdateInvoiceRequest struct {
	Status  string               `json:"status" binding:"omitempty,oneof=pending paid overdue"`
	Items   []InvoiceItemRequest `json:"items" binding:"dive"`
	DueDate string               `json:"due_date"`
}

// buildItems converts request items into models, computing each amount
// from quantity and unit price.
func buildItems(reqItems []InvoiceItemRequest) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(reqItems))
	for _, ri := range reqItems {
		price := decimal.NewFromFloat(ri.UnitPrice)
		items = append(items, models.InvoiceItem{
			Description: ri.Description,
			Quantity:    ri.Quantity,
			UnitPrice:   price,
			Amount:      models.ItemAmount(ri.Quantity, price),
		})
	}
	return items
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	due, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &due, nil
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var invoices []models.Invoice

	if err := h.db.Preload("Customer").Order("created_at desc").Find(&invoices).Error; err != nil {
		h.log.Error("failed to fetch invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}

	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id := c.Param("id")
	var invoice models.Invoice

	if err := h.db.Preload("Customer").Preload("Items").Where("id = ?", id).First(&invoice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data", "details": err.Error()})
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date, expected YYYY-MM-DD"})
		return
	}

	var customer models.Customer
	if err := h.db.Where("id = ?", req.CustomerID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	items := buildItems(req.Items)
	invoice := models.Invoice{
		CustomerID: customer.ID,
		Total:      models.CalculateTotal(items),
		Status:     models.StatusPending,
		DueDate:    dueDate,
		Items:      items,
	}

	if err := h.db.Create(&invoice).Error; err != nil {
		h.log.Error("failed to create invoice", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// UpdateInvoice applies a status/due-date change and replaces the invoice's
// item set wholesale, recomputing the stored total. The delete-then-insert
// replacement and the total update run in a single transaction so the
// invoice can never be observed with a stale total or a half-replaced
// item set.
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id := c.Param("id")
	var invoice models.Invoice

	if err := h.db.Where("id = ?", id).First(&invoice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data", "details": err.Error()})
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date, expected YYYY-MM-DD"})
		return
	}

	items := buildItems(req.Items)

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if req.Status != "" {
			invoice.Status = req.Status
		}
		invoice.DueDate = dueDate

		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		invoice.Total = models.CalculateTotal(items)
		return tx.Save(&invoice).Error
	})
	if err != nil {
		h.log.Error("failed to update invoice", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}

	var updated models.Invoice
	if err := h.db.Preload("Customer").Preload("Items").Where("id = ?", invoice.ID).First(&updated).Error; err != nil {
		h.log.Error("failed to reload invoice", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id := c.Param("id")
	var invoice models.Invoice

	if err := h.db.Where("id = ?", id).First(&invoice).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
	if err != nil {
		h.log.Error("failed to delete invoice", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
