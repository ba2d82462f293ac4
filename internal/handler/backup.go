package handler

import (
	"errors"
	"io"
	"net/http"
	"os"

	"bakecost/internal/apierror"
	"bakecost/internal/dto"
	"bakecost/internal/service"

	"github.com/gin-gonic/gin"
)

// 50 MB — far above any realistic snapshot, just a guard against abuse.
const maxSnapshotBytes = 50 << 20

type BackupHandler struct {
	backup  service.BackupService
	restore service.RestoreService
}

func NewBackupHandler(backup service.BackupService, restore service.RestoreService) *BackupHandler {
	return &BackupHandler{backup: backup, restore: restore}
}

// Create godoc
// @Summary      Create a backup snapshot
// @Description  Serializes the full dataset into a name-keyed JSON snapshot and writes it under the backup directory. Derived costs are never written.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Param        body body object{description=string} false "Optional description"
// @Success      201 {object} dto.BackupResult
// @Failure      500 {object} apierror.APIError
// @Router       /v1/backup/create [post]
func (h *BackupHandler) Create(c *gin.Context) {
	var req struct {
		Description string `json:"description"`
	}
	// Body is optional.
	_ = c.ShouldBindJSON(&req)

	result, err := h.backup.Create(c.Request.Context(), req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("backup failed"))
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Download godoc
// @Summary      Download a snapshot
// @Description  Builds the snapshot in memory and returns it as the response body, without writing a file.
// @Tags         backup
// @Produce      json
// @Success      200 {object} dto.Snapshot
// @Router       /v1/backup/download [get]
func (h *BackupHandler) Download(c *gin.Context) {
	snap, err := h.backup.BuildSnapshot(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("backup failed"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="backup.json"`)
	c.JSON(http.StatusOK, snap)
}

// Restore godoc
// @Summary      Restore a snapshot
// @Description  Reinserts a snapshot in dependency order, matching records by name. Accepts a multipart upload ("file") or a JSON body {"path": "..."} naming a file on the server. Idempotent; only one restore runs at a time.
// @Tags         backup
// @Accept       mpfd
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.RestoreResponse
// @Failure      400 {object} apierror.APIError "Corrupt snapshot"
// @Failure      409 {object} apierror.APIError "Restore already in progress"
// @Router       /v1/backup/restore [post]
func (h *BackupHandler) Restore(c *gin.Context) {
	raw, ok := h.readSnapshotBody(c)
	if !ok {
		return
	}

	result, err := h.restore.Restore(c.Request.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestoreInProgress):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case errors.Is(err, service.ErrCorruptSnapshot):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("restore failed"))
		}
		return
	}
	c.JSON(http.StatusOK, dto.RestoreResponse{Message: "restore completed", Restored: *result})
}

func (h *BackupHandler) readSnapshotBody(c *gin.Context) ([]byte, bool) {
	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxSnapshotBytes {
			c.JSON(http.StatusBadRequest, apierror.New("snapshot file too large"))
			return nil, false
		}
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("cannot read uploaded file"))
			return nil, false
		}
		defer f.Close()
		raw, err := io.ReadAll(io.LimitReader(f, maxSnapshotBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("cannot read uploaded file"))
			return nil, false
		}
		return raw, true
	}

	var req dto.RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Path == "" {
		c.JSON(http.StatusBadRequest, apierror.New("provide a snapshot upload or a path"))
		return nil, false
	}
	raw, err := os.ReadFile(req.Path)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cannot read snapshot file"))
		return nil, false
	}
	return raw, true
}
