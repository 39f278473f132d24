package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrSubjectExists = errors.New("subject already exists")

type subjectStore interface {
	FindAll(ctx context.Context) ([]*Subject, error)
	FindByTriple(ctx context.Context, department string, semester int, name string) (*Subject, error)
	Create(ctx context.Context, subject *Subject) error
	Delete(ctx context.Context, department string, semester int, name string) error
}

type settingsStore interface {
	Upsert(ctx context.Context, key string, value interface{}) error
	FindDeadline(ctx context.Context) (time.Time, bool, error)
}

// CatalogService manages the subject catalog and the preference deadline
// setting.
type CatalogService struct {
	store  subjectStore
	config settingsStore
	logger *zap.Logger
}

func NewCatalogService(subjects *SubjectRepository, settings *SettingsRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: subjects, config: settings, logger: logger}
}

// GroupedSubjects returns the catalog as department -> semester -> names,
// the shape both the faculty and student pages render.
func (s *CatalogService) GroupedSubjects(ctx context.Context) (map[string]map[int][]string, error) {
	subjects, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	grouped := map[string]map[int][]string{}
	for _, subject := range subjects {
		if grouped[subject.Department] == nil {
			grouped[subject.Department] = map[int][]string{}
		}
		grouped[subject.Department][subject.Semester] = append(grouped[subject.Department][subject.Semester], subject.Name)
	}
	return grouped, nil
}

func (s *CatalogService) AddSubject(ctx context.Context, department string, semester int, name string) error {
	department = strings.ToUpper(strings.TrimSpace(department))
	name = strings.TrimSpace(name)

	existing, err := s.store.FindByTriple(ctx, department, semester, name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrSubjectExists
	}

	if err := s.store.Create(ctx, &Subject{Department: department, Semester: semester, Name: name}); err != nil {
		return err
	}
	s.logger.Info("subject added", zap.String("department", department), zap.Int("semester", semester), zap.String("subject", name))
	return nil
}

func (s *CatalogService) DeleteSubject(ctx context.Context, department string, semester int, name string) error {
	department = strings.ToUpper(strings.TrimSpace(department))
	name = strings.TrimSpace(name)

	if err := s.store.Delete(ctx, department, semester, name); err != nil {
		return err
	}
	s.logger.Info("subject deleted", zap.String("department", department), zap.Int("semester", semester), zap.String("subject", name))
	return nil
}

func (s *CatalogService) SetDeadline(ctx context.Context, deadline time.Time) error {
	return s.config.Upsert(ctx, PreferenceDeadlineKey, deadline)
}

func (s *CatalogService) Deadline(ctx context.Context) (time.Time, bool, error) {
	return s.config.FindDeadline(ctx)
}
