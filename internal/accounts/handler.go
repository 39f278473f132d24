package accounts

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AccountHandler maps the login, registration and approval routes onto the
// account services. Responses keep the {success, message} shape the web
// clients expect, with soft 200-status failures for bad credentials.
type AccountHandler struct {
	admins   *AdminService
	faculty  *FacultyService
	students *StudentService
	logger   *zap.Logger
}

func NewAccountHandler(admins *AdminService, faculty *FacultyService, students *StudentService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{admins: admins, faculty: faculty, students: students, logger: logger}
}

func (h *AccountHandler) AdminLogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"success": false, "message": "All fields required"})
	}

	err := h.admins.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.JSON(http.StatusOK, map[string]interface{}{"success": false, "message": "Invalid credentials"})
		}
		h.logger.Error("admin login failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func (h *AccountHandler) FacultyRegister(c echo.Context) error {
	var req FacultyRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"success": false, "message": "All fields required"})
	}

	err := h.faculty.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, ErrFacultyExists) {
			return c.JSON(http.StatusOK, map[string]interface{}{"success": false, "message": "Faculty already exists"})
		}
		h.logger.Error("faculty registration failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func (h *AccountHandler) FacultyLogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request"})
	}

	err := h.faculty.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotApproved):
			return c.JSON(http.StatusOK, map[string]interface{}{"success": false, "message": "Waiting for approval"})
		case errors.Is(err, ErrInvalidCredentials):
			return c.JSON(http.StatusOK, map[string]interface{}{"success": false})
		default:
			h.logger.Error("faculty login failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false})
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func (h *AccountHandler) FacultyProfile(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request"})
	}

	faculty, err := h.faculty.Profile(c.Request().Context(), req.Username)
	if err != nil {
		if errors.Is(err, ErrFacultyNotFound) {
			return c.JSON(http.StatusOK, map[string]interface{}{"success": false})
		}
		h.logger.Error("faculty profile lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"faculty": map[string]interface{}{
			"username":           faculty.Username,
			"name":               faculty.Name,
			"department":         faculty.Department,
			"subjectPreferences": faculty.SubjectPreferences,
		},
	})
}

func (h *AccountHandler) FacultyPreferences(c echo.Context) error {
	var req PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"success": false, "message": "All fields required"})
	}

	err := h.faculty.SavePreferences(c.Request().Context(), req.Username, req.Preferences)
	if err != nil {
		switch {
		case errors.Is(err, ErrDeadlinePassed):
			return c.JSON(http.StatusOK, map[string]interface{}{"success": false, "message": "Preference deadline has passed"})
		case errors.Is(err, ErrFacultyNotFound):
			return c.JSON(http.StatusOK, map[string]interface{}{"success": false, "message": "Faculty not found"})
		default:
			h.logger.Error("saving preferences failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false})
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "message": "Preferences saved"})
}

func (h *AccountHandler) PendingFaculty(c echo.Context) error {
	faculty, err := h.faculty.Pending(c.Request().Context())
	if err != nil {
		h.logger.Error("listing pending faculty failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "faculty": faculty})
}

func (h *AccountHandler) ApprovedFaculty(c echo.Context) error {
	faculty, err := h.faculty.Approved(c.Request().Context())
	if err != nil {
		h.logger.Error("listing approved faculty failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "faculty": faculty})
}

func (h *AccountHandler) ApproveFaculty(c echo.Context) error {
	var req ApproveFacultyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request"})
	}

	id, err := primitive.ObjectIDFromHex(req.FacultyID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid faculty id"})
	}

	if err := h.faculty.Approve(c.Request().Context(), id); err != nil {
		h.logger.Error("faculty approval failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func (h *AccountHandler) StudentLogin(c echo.Context) error {
	var req StudentLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"success": false, "message": "Email and password required"})
	}

	student, err := h.students.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.JSON(http.StatusOK, map[string]interface{}{"success": false, "message": "Invalid credentials"})
		}
		h.logger.Error("student login failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"student": map[string]interface{}{
			"name":  student.Name,
			"email": student.Email,
			"regNo": student.RegNo,
		},
	})
}
