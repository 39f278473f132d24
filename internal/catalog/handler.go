package catalog

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// deadlineLayouts are the formats accepted from the admin page: full
// RFC 3339, the datetime-local input format, and a bare date.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

type CatalogHandler struct {
	service *CatalogService
	logger  *zap.Logger
}

func NewCatalogHandler(service *CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, logger: logger}
}

// ListSubjects serves both the admin and the faculty/student subject
// listings; the body is the bare grouped map.
func (h *CatalogHandler) ListSubjects(c echo.Context) error {
	grouped, err := h.service.GroupedSubjects(c.Request().Context())
	if err != nil {
		h.logger.Error("listing subjects failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to load subjects"})
	}
	return c.JSON(http.StatusOK, grouped)
}

func (h *CatalogHandler) AddSubject(c echo.Context) error {
	var req AddSubjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.Department == "" || req.Semester == 0 || req.Subject == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing fields"})
	}

	err := h.service.AddSubject(c.Request().Context(), req.Department, req.Semester, req.Subject)
	if err != nil {
		if errors.Is(err, ErrSubjectExists) {
			return c.JSON(http.StatusOK, map[string]string{"message": "Already exists"})
		}
		h.logger.Error("adding subject failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to add subject"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Subject added successfully"})
}

func (h *CatalogHandler) DeleteSubject(c echo.Context) error {
	var req DeleteSubjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.Department == "" || req.Semester == 0 || req.Subject == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing fields"})
	}

	err := h.service.DeleteSubject(c.Request().Context(), req.Department, req.Semester, req.Subject)
	if err != nil {
		if errors.Is(err, ErrSubjectNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Subject not found"})
		}
		h.logger.Error("deleting subject failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Deletion failed"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Subject deleted successfully"})
}

func (h *CatalogHandler) SetDeadline(c echo.Context) error {
	var req SetDeadlineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	if req.Deadline == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Deadline required"})
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid deadline format"})
	}

	if err := h.service.SetDeadline(c.Request().Context(), deadline); err != nil {
		h.logger.Error("saving deadline failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to save deadline"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deadline saved"})
}

func (h *CatalogHandler) GetDeadline(c echo.Context) error {
	deadline, ok, err := h.service.Deadline(c.Request().Context())
	if err != nil {
		h.logger.Error("reading deadline failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to load deadline"})
	}
	if !ok {
		return c.JSON(http.StatusOK, map[string]interface{}{"deadline": nil})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"deadline": deadline})
}

func parseDeadline(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range deadlineLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
