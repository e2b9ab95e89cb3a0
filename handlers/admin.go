package handlers

import (
	"errors"
	"net/http"
	"time"

	"podium/models"
	"podium/services/admin"
	"podium/services/application"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminStatsHandler serves the review dashboard summary.
func AdminStatsHandler(svc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		stats, err := svc.GetStats()
		if err != nil {
			logger.Error("failed to build stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// AdminListApplicationsHandler lists applications, optionally filtered with
// the ?status= query parameter.
func AdminListApplicationsHandler(svc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var filter *models.ApplicationStatus
		if raw := c.Query("status"); raw != "" {
			status := models.ApplicationStatus(raw)
			if !status.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + raw})
				return
			}
			filter = &status
		}

		apps, err := svc.ListApplications(filter)
		if err != nil {
			logger.Error("failed to list applications", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list applications"})
			return
		}
		c.JSON(http.StatusOK, apps)
	}
}

// AdminGetApplicationHandler returns one application with its attachments.
func AdminGetApplicationHandler(svc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		detail, err := svc.GetApplicationDetail(c.Param("id"))
		if err != nil {
			if errors.Is(err, admin.ErrApplicationNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
				return
			}
			logger.Error("failed to load application detail", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load application"})
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

type applicationPatchRequest struct {
	Status     *models.ApplicationStatus `json:"status"`
	UDLStudent *bool                     `json:"udlStudent"`
}

// AdminPatchApplicationHandler applies a review decision or flips the
// fee-waiver flag. Exactly one of the two fields must be present.
func AdminPatchApplicationHandler(svc application.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		actor, ok := currentActor(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req applicationPatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("invalid application patch", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if (req.Status == nil) == (req.UDLStudent == nil) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Provide exactly one of status or udlStudent"})
			return
		}

		var (
			app *models.Application
			err error
		)
		if req.Status != nil {
			app, err = svc.Decide(actor, c.Param("id"), *req.Status)
		} else {
			app, err = svc.SetUDLStudent(actor, c.Param("id"), *req.UDLStudent)
		}
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, app)
	}
}

// AdminExportHandler streams every application as a CSV download.
func AdminExportHandler(svc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		data, err := svc.ExportCSV()
		if err != nil {
			logger.Error("failed to export applications", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export applications"})
			return
		}

		filename := "applications-" + time.Now().Format("2006-01-02") + ".csv"
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/csv", data)
	}
}

// AdminExportFinancialAidHandler streams every aid request as a CSV download.
func AdminExportFinancialAidHandler(svc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		data, err := svc.ExportFinancialAidCSV()
		if err != nil {
			logger.Error("failed to export financial aid", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export financial aid"})
			return
		}

		filename := "financial-aid-" + time.Now().Format("2006-01-02") + ".csv"
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/csv", data)
	}
}

// AdminListFinancialAidHandler lists aid requests joined with applicants.
func AdminListFinancialAidHandler(svc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		rows, err := svc.ListFinancialAid()
		if err != nil {
			logger.Error("failed to list financial aid", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list financial aid"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

type aidPatchRequest struct {
	Status models.AidStatus `json:"status"`
}

// AdminUpdateAidStatusHandler records an aid review decision.
func AdminUpdateAidStatusHandler(svc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req aidPatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("invalid aid patch", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown aid status: " + string(req.Status)})
			return
		}

		if err := svc.UpdateAidStatus(c.Param("id"), req.Status); err != nil {
			if errors.Is(err, admin.ErrAidNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Financial aid application not found"})
				return
			}
			logger.Error("failed to update aid status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update aid status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"applicationId": c.Param("id"), "status": req.Status})
	}
}

// AdminEmailRosterHandler returns outreach addresses for a status bucket.
func AdminEmailRosterHandler(svc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		status := models.ApplicationStatus(c.Query("status"))
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + string(status)})
			return
		}

		entries, err := svc.EmailRoster(status)
		if err != nil {
			logger.Error("failed to build email roster", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build email roster"})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// AdminDeleteAllHandler purges every application for a season reset.
func AdminDeleteAllHandler(svc admin.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		result, err := svc.DeleteAllApplications()
		if err != nil {
			logger.Error("failed to purge applications", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete applications"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
