package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSubjectStore struct {
	subjects []*Subject
}

func (f *fakeSubjectStore) FindAll(ctx context.Context) ([]*Subject, error) {
	return f.subjects, nil
}

func (f *fakeSubjectStore) FindByTriple(ctx context.Context, department string, semester int, name string) (*Subject, error) {
	for _, s := range f.subjects {
		if s.Department == department && s.Semester == semester && s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSubjectStore) Create(ctx context.Context, subject *Subject) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakeSubjectStore) Delete(ctx context.Context, department string, semester int, name string) error {
	for i, s := range f.subjects {
		if s.Department == department && s.Semester == semester && s.Name == name {
			f.subjects = append(f.subjects[:i], f.subjects[i+1:]...)
			return nil
		}
	}
	return ErrSubjectNotFound
}

type fakeSettingsStore struct {
	values map[string]interface{}
}

func (f *fakeSettingsStore) Upsert(ctx context.Context, key string, value interface{}) error {
	f.values[key] = value
	return nil
}

func (f *fakeSettingsStore) FindDeadline(ctx context.Context) (time.Time, bool, error) {
	value, ok := f.values[PreferenceDeadlineKey]
	if !ok {
		return time.Time{}, false, nil
	}
	return value.(time.Time), true, nil
}

func newTestService() (*CatalogService, *fakeSubjectStore, *fakeSettingsStore) {
	subjects := &fakeSubjectStore{}
	settings := &fakeSettingsStore{values: map[string]interface{}{}}
	return &CatalogService{store: subjects, config: settings, logger: zap.NewNop()}, subjects, settings
}

func TestAddSubjectNormalizesInput(t *testing.T) {
	ctx := context.Background()
	svc, subjects, _ := newTestService()

	require.NoError(t, svc.AddSubject(ctx, " cse ", 3, "  Operating Systems "))

	require.Len(t, subjects.subjects, 1)
	assert.Equal(t, "CSE", subjects.subjects[0].Department)
	assert.Equal(t, 3, subjects.subjects[0].Semester)
	assert.Equal(t, "Operating Systems", subjects.subjects[0].Name)
}

func TestAddSubjectRejectsDuplicateTriple(t *testing.T) {
	ctx := context.Background()
	svc, subjects, _ := newTestService()

	require.NoError(t, svc.AddSubject(ctx, "CSE", 3, "Operating Systems"))
	assert.ErrorIs(t, svc.AddSubject(ctx, "cse", 3, "Operating Systems"), ErrSubjectExists)
	assert.Len(t, subjects.subjects, 1)

	// same name in a different semester is a different subject
	assert.NoError(t, svc.AddSubject(ctx, "CSE", 4, "Operating Systems"))
}

func TestDeleteSubject(t *testing.T) {
	ctx := context.Background()
	svc, subjects, _ := newTestService()

	require.NoError(t, svc.AddSubject(ctx, "CSE", 3, "Operating Systems"))
	require.NoError(t, svc.DeleteSubject(ctx, "cse", 3, " Operating Systems "))
	assert.Empty(t, subjects.subjects)

	assert.ErrorIs(t, svc.DeleteSubject(ctx, "CSE", 3, "Operating Systems"), ErrSubjectNotFound)
}

func TestGroupedSubjects(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	require.NoError(t, svc.AddSubject(ctx, "CSE", 3, "Operating Systems"))
	require.NoError(t, svc.AddSubject(ctx, "CSE", 3, "Databases"))
	require.NoError(t, svc.AddSubject(ctx, "CSE", 4, "Networks"))
	require.NoError(t, svc.AddSubject(ctx, "ECE", 3, "Circuits"))

	grouped, err := svc.GroupedSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]map[int][]string{
		"CSE": {
			3: {"Operating Systems", "Databases"},
			4: {"Networks"},
		},
		"ECE": {
			3: {"Circuits"},
		},
	}, grouped)
}

func TestDeadlineRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, ok, err := svc.Deadline(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	deadline := time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)
	require.NoError(t, svc.SetDeadline(ctx, deadline))

	got, ok, err := svc.Deadline(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, deadline, got)
}

func TestParseDeadlineLayouts(t *testing.T) {
	for _, value := range []string{"2026-09-15T23:59:00Z", "2026-09-15T23:59", "2026-09-15"} {
		_, err := parseDeadline(value)
		assert.NoError(t, err, value)
	}
	_, err := parseDeadline("next tuesday")
	assert.Error(t, err)
}
