package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tastebook/tastebook-backend/internal/app/service"
	apperrors "github.com/tastebook/tastebook-backend/internal/errors"
	"github.com/tastebook/tastebook-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminController struct {
	exportService service.ExportService
}

func NewAdminController(exportService service.ExportService) *AdminController {
	return &AdminController{
		exportService: exportService,
	}
}

// ExportRecipes streams the full recipe catalog as an XLSX download
// GET /api/v1/admin/export/recipes
func (ctrl *AdminController) ExportRecipes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.exportService.RecipesXLSX()
	if err != nil {
		log.Error("Recipe export failed", err, nil)
		apperrors.InternalError(c, "Failed to build the export. Please try again")
		return
	}

	filename := fmt.Sprintf("recipes-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
