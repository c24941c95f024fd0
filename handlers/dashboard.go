package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yourusername/billing-console/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewDashboardHandler(db *gorm.DB, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		db:  db,
		log: log,
	}
}

type monthRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// GetStats returns the dashboard aggregates: customer and invoice counts,
// total revenue, outstanding (pending) invoice count, and a revenue trend
// over the last six months.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	var totalCustomers int64
	if err := h.db.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		h.log.Error("failed to count customers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	var invoices []models.Invoice
	if err := h.db.Find(&invoices).Error; err != nil {
		h.log.Error("failed to fetch invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	totalRevenue := decimal.Zero
	var outstanding int64
	for _, inv := range invoices {
		totalRevenue = totalRevenue.Add(inv.Total)
		if inv.Status == models.StatusPending {
			outstanding++
		}
	}

	sixMonthsAgo := time.Now().AddDate(0, -6, 0)
	byMonth := map[string]decimal.Decimal{}
	order := map[string]time.Time{}
	for _, inv := range invoices {
		if inv.CreatedAt.Before(sixMonthsAgo) {
			continue
		}
		month := time.Date(inv.CreatedAt.Year(), inv.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		label := month.Format("Jan 2006")
		byMonth[label] = byMonth[label].Add(inv.Total)
		order[label] = month
	}

	trend := make([]monthRevenue, 0, len(byMonth))
	for label, revenue := range byMonth {
		trend = append(trend, monthRevenue{Month: label, Revenue: revenue})
	}
	sort.Slice(trend, func(i, j int) bool {
		return order[trend[i].Month].Before(order[trend[j].Month])
	})

	c.JSON(http.StatusOK, gin.H{
		"total_customers":      totalCustomers,
		"total_invoices":       len(invoices),
		"total_revenue":        totalRevenue,
		"outstanding_invoices": outstanding,
		"revenue_trend":        trend,
	})
}
