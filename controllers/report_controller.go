package controllers

import (
	"log"
	"net/http"
	"time"

	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// GetDashboard returns the headline counters, recomputed fresh on each load.
func (ctrl *ReportController) GetDashboard(c *gin.Context) {
	stats, err := ctrl.Reports.Dashboard()
	if err != nil {
		log.Printf("dashboard stats failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute dashboard")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

// GetRevenueSeries returns revenue + occupancy for ?period=weekly|monthly|yearly.
func (ctrl *ReportController) GetRevenueSeries(c *gin.Context) {
	period := c.DefaultQuery("period", "monthly")
	points, err := ctrl.Reports.Series(period, time.Now())
	if err != nil {
		log.Printf("revenue series failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute series")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"period": period, "points": points})
}

// GetRoomTypeRevenue ranks room types by paid revenue.
func (ctrl *ReportController) GetRoomTypeRevenue(c *gin.Context) {
	ranking, err := ctrl.Reports.RevenueByRoomType()
	if err != nil {
		log.Printf("room type revenue failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute ranking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"ranking": ranking})
}

// GetStatusDistribution returns the booking status breakdown.
func (ctrl *ReportController) GetStatusDistribution(c *gin.Context) {
	shares, err := ctrl.Reports.StatusDistribution()
	if err != nil {
		log.Printf("status distribution failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute distribution")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"distribution": shares})
}
