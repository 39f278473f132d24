package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"LoginApp/internal/catalog"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotApproved        = errors.New("waiting for approval")
	ErrFacultyExists      = errors.New("faculty already exists")
	ErrFacultyNotFound    = errors.New("faculty not found")
	ErrDeadlinePassed     = errors.New("preference deadline has passed")
)

type adminStore interface {
	FindByUsername(ctx context.Context, username string) (*Admin, error)
	Create(ctx context.Context, admin *Admin) error
}

type facultyStore interface {
	FindByUsername(ctx context.Context, username string) (*Faculty, error)
	Create(ctx context.Context, faculty *Faculty) error
	FindByApproved(ctx context.Context, approved bool) ([]*Faculty, error)
	Approve(ctx context.Context, id primitive.ObjectID) error
	UpdatePreferences(ctx context.Context, username string, prefs []SubjectPreference) error
}

type studentStore interface {
	FindByEmail(ctx context.Context, email string) (*Student, error)
}

type deadlineStore interface {
	FindDeadline(ctx context.Context) (time.Time, bool, error)
}

// AdminService handles admin authentication.
type AdminService struct {
	store  adminStore
	logger *zap.Logger
}

func NewAdminService(repo *AdminRepository, logger *zap.Logger) *AdminService {
	return &AdminService{store: repo, logger: logger}
}

func (s *AdminService) Login(ctx context.Context, username, password string) error {
	admin, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if admin == nil || !CheckPasswordHash(password, admin.PasswordHash) {
		return ErrInvalidCredentials
	}
	return nil
}

// FacultyService handles faculty registration, login, profile lookup,
// the admin approval workflow and subject preference submission.
type FacultyService struct {
	store     facultyStore
	deadlines deadlineStore
	logger    *zap.Logger
}

func NewFacultyService(repo *FacultyRepository, settings *catalog.SettingsRepository, logger *zap.Logger) *FacultyService {
	return &FacultyService{store: repo, deadlines: settings, logger: logger}
}

func (s *FacultyService) Register(ctx context.Context, req FacultyRegisterRequest) error {
	existing, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrFacultyExists
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return err
	}

	faculty := &Faculty{
		Name:               req.Name,
		Department:         req.Department,
		Username:           req.Username,
		PasswordHash:       hash,
		Approved:           false,
		SubjectPreferences: []SubjectPreference{},
	}
	if err := s.store.Create(ctx, faculty); err != nil {
		return err
	}
	s.logger.Info("faculty registered", zap.String("username", req.Username))
	return nil
}

// Login rejects unapproved accounts before the password is even checked,
// so a pending member sees the approval message rather than a credential
// failure.
func (s *FacultyService) Login(ctx context.Context, username, password string) error {
	faculty, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if faculty == nil {
		return ErrInvalidCredentials
	}
	if !faculty.Approved {
		return ErrNotApproved
	}
	if !CheckPasswordHash(password, faculty.PasswordHash) {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *FacultyService) Profile(ctx context.Context, username string) (*Faculty, error) {
	faculty, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if faculty == nil {
		return nil, ErrFacultyNotFound
	}
	return faculty, nil
}

func (s *FacultyService) Pending(ctx context.Context) ([]*Faculty, error) {
	return s.store.FindByApproved(ctx, false)
}

func (s *FacultyService) Approved(ctx context.Context) ([]*Faculty, error) {
	return s.store.FindByApproved(ctx, true)
}

func (s *FacultyService) Approve(ctx context.Context, id primitive.ObjectID) error {
	if err := s.store.Approve(ctx, id); err != nil {
		return err
	}
	s.logger.Info("faculty approved", zap.String("facultyId", id.Hex()))
	return nil
}

// SavePreferences stores the ordered subject wish list, refused once the
// admin-set deadline has passed.
func (s *FacultyService) SavePreferences(ctx context.Context, username string, prefs []SubjectPreference) error {
	deadline, ok, err := s.deadlines.FindDeadline(ctx)
	if err != nil {
		return err
	}
	if ok && time.Now().After(deadline) {
		return ErrDeadlinePassed
	}

	faculty, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if faculty == nil {
		return ErrFacultyNotFound
	}
	return s.store.UpdatePreferences(ctx, username, prefs)
}

// StudentService handles student login by email.
type StudentService struct {
	store  studentStore
	logger *zap.Logger
}

func NewStudentService(repo *StudentRepository, logger *zap.Logger) *StudentService {
	return &StudentService{store: repo, logger: logger}
}

func (s *StudentService) Login(ctx context.Context, email, password string) (*Student, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	student, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if student == nil || !CheckPasswordHash(password, student.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return student, nil
}
