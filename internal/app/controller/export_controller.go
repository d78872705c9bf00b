package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"salon-crm-backend/internal/app/service"
	apperrors "salon-crm-backend/internal/errors"
	"salon-crm-backend/internal/middleware"
)

type ExportController struct {
	exportService service.ExportService
}

func NewExportController(exportService service.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// ExportCustomers streams the customer dataset as a file download
// GET /api/v1/export/customers?format=csv|json|xlsx&customer_id=
func (ctrl *ExportController) ExportCustomers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	format := c.DefaultQuery("format", service.ExportFormatCSV)

	var customerID *uint
	if raw := c.Query("customer_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "IDの形式が正しくありません")
			return
		}
		id := uint(parsed)
		customerID = &id
	}

	result, err := ctrl.exportService.Export(format, customerID)
	if err != nil {
		log.Error("Export failed", err, map[string]interface{}{
			"format": format,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalExportError, "エクスポートに失敗しました")
		return
	}

	log.Info("Export generated", map[string]interface{}{
		"format":    format,
		"file_name": result.FileName,
		"bytes":     len(result.Data),
	})

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
