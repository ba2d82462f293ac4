package handler

import (
	"net/http"

	"bakecost/internal/apierror"
	"bakecost/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct{ svc service.ExcelService }

func NewExportHandler(svc service.ExcelService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", xlsxContentType)
	if err := f.Write(c.Writer); err != nil {
		// Headers are already out; nothing useful left to send.
		c.Abort()
	}
}

// ExportMaterials godoc
// @Summary      Export materials as a spreadsheet
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Router       /v1/export/materials [get]
func (h *ExportHandler) ExportMaterials(c *gin.Context) {
	f, name, err := h.svc.ExportMaterials(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("export failed"))
		return
	}
	writeWorkbook(c, f, name)
}

// ExportRecipes godoc
// @Summary      Export recipes with derived costs as a spreadsheet
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Router       /v1/export/recipes [get]
func (h *ExportHandler) ExportRecipes(c *gin.Context) {
	f, name, err := h.svc.ExportRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("export failed"))
		return
	}
	writeWorkbook(c, f, name)
}

// ExportProducts godoc
// @Summary      Export products with derived costs as a spreadsheet
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Router       /v1/export/products [get]
func (h *ExportHandler) ExportProducts(c *gin.Context) {
	f, name, err := h.svc.ExportProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("export failed"))
		return
	}
	writeWorkbook(c, f, name)
}

// ImportMaterials godoc
// @Summary      Import materials from a spreadsheet
// @Description  Upserts materials from a worksheet with columns Name | Category | Price Per Gram. Bad rows are skipped and reported.
// @Tags         export
// @Accept       mpfd
// @Produce      json
// @Param        file formData file true "Workbook (.xlsx)"
// @Success      200 {object} dto.ImportResult
// @Failure      400 {object} apierror.APIError
// @Router       /v1/import/materials [post]
func (h *ExportHandler) ImportMaterials(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("missing file upload"))
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cannot read uploaded file"))
		return
	}
	defer f.Close()

	result, err := h.svc.ImportMaterials(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cannot parse workbook"))
		return
	}
	c.JSON(http.StatusOK, result)
}
