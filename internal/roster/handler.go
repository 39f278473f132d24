package roster

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UploadHandler struct {
	importer *Importer
	logger   *zap.Logger
}

func NewUploadHandler(importer *Importer, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{importer: importer, logger: logger}
}

// UploadStudents handles the multipart student roster upload. The whole
// file is read into memory and handed to the importer; the response only
// carries the aggregate counts.
func (h *UploadHandler) UploadStudents(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "File is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("opening upload failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Excel upload failed"})
	}
	defer src.Close()

	buf, err := io.ReadAll(src)
	if err != nil {
		h.logger.Error("reading upload failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Excel upload failed"})
	}

	summary, err := h.importer.Import(c.Request().Context(), buf)
	if err != nil {
		h.logger.Error("student import failed", zap.Error(err), zap.String("file", fileHeader.Filename))
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Excel upload failed"})
	}

	message := fmt.Sprintf("Upload complete. %d added, %d skipped.", summary.Inserted, summary.Skipped)
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}
