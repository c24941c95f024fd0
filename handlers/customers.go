package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/billing-console/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CustomerHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCustomerHandler(db *gorm.DB, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		db:  db,
		log: log,
	}
}

type CustomerRequest struct {
	Name               string  `json:"name" binding:"required"`
	Email              *string `json:"email" binding:"omitempty,email"`
	Phone              *string `json:"phone"`
	Address            *string `json:"address"`
	Notes              *string `json:"notes"`
	ExternalCustomerID string  `json:"external_customer_id"`
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var customers []models.Customer

	if err := h.db.Order("created_at desc").Find(&customers).Error; err != nil {
		h.log.Error("failed to fetch customers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id := c.Param("id")
	var customer models.Customer

	if err := h.db.Preload("Invoices").Where("id = ?", id).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data", "details": err.Error()})
		return
	}

	customer := models.Customer{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		Notes:              req.Notes,
		ExternalCustomerID: req.ExternalCustomerID,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		h.log.Error("failed to create customer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id := c.Param("id")
	var customer models.Customer

	if err := h.db.Where("id = ?", id).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data", "details": err.Error()})
		return
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.Notes = req.Notes
	customer.ExternalCustomerID = req.ExternalCustomerID

	if err := h.db.Save(&customer).Error; err != nil {
		h.log.Error("failed to update customer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer together with all of its invoices and
// their items. The cascade runs explicitly inside one transaction so it does
// not rely on driver-level foreign key enforcement.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	var customer models.Customer

	if err := h.db.Where("id = ?", id).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		invoiceIDs := tx.Model(&models.Invoice{}).Select("id").Where("customer_id = ?", customer.ID)
		if err := tx.Where("invoice_id IN (?)", invoiceIDs).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.Invoice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&customer).Error
	})
	if err != nil {
		h.log.Error("failed to delete customer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

func (h *CustomerHandler) ListCustomerInvoices(c *gin.Context) {
	id := c.Param("id")
	var invoices []models.Invoice

	if err := h.db.Preload("Items").Where("customer_id = ?", id).Order("created_at desc").Find(&invoices).Error; err != nil {
		h.log.Error("failed to fetch customer invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer invoices"})
		return
	}

	c.JSON(http.StatusOK, invoices)
}
