package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeAdminStore struct {
	admins map[string]*Admin
}

func (f *fakeAdminStore) FindByUsername(ctx context.Context, username string) (*Admin, error) {
	return f.admins[username], nil
}

func (f *fakeAdminStore) Create(ctx context.Context, admin *Admin) error {
	f.admins[admin.Username] = admin
	return nil
}

type fakeFacultyStore struct {
	faculty map[string]*Faculty
}

func (f *fakeFacultyStore) FindByUsername(ctx context.Context, username string) (*Faculty, error) {
	return f.faculty[username], nil
}

func (f *fakeFacultyStore) Create(ctx context.Context, faculty *Faculty) error {
	faculty.ID = primitive.NewObjectID()
	f.faculty[faculty.Username] = faculty
	return nil
}

func (f *fakeFacultyStore) FindByApproved(ctx context.Context, approved bool) ([]*Faculty, error) {
	matched := []*Faculty{}
	for _, fac := range f.faculty {
		if fac.Approved == approved {
			matched = append(matched, fac)
		}
	}
	return matched, nil
}

func (f *fakeFacultyStore) Approve(ctx context.Context, id primitive.ObjectID) error {
	for _, fac := range f.faculty {
		if fac.ID == id {
			fac.Approved = true
			return nil
		}
	}
	return ErrFacultyNotFound
}

func (f *fakeFacultyStore) UpdatePreferences(ctx context.Context, username string, prefs []SubjectPreference) error {
	fac, ok := f.faculty[username]
	if !ok {
		return ErrFacultyNotFound
	}
	fac.SubjectPreferences = prefs
	return nil
}

type fakeStudentLoginStore struct {
	students map[string]*Student
}

func (f *fakeStudentLoginStore) FindByEmail(ctx context.Context, email string) (*Student, error) {
	return f.students[email], nil
}

type fakeDeadlines struct {
	deadline time.Time
	set      bool
}

func (f *fakeDeadlines) FindDeadline(ctx context.Context) (time.Time, bool, error) {
	return f.deadline, f.set, nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	store := &fakeAdminStore{admins: map[string]*Admin{
		"root": {Username: "root", PasswordHash: mustHash(t, "s3cret")},
	}}
	svc := &AdminService{store: store, logger: zap.NewNop()}

	assert.NoError(t, svc.Login(ctx, "root", "s3cret"))
	assert.ErrorIs(t, svc.Login(ctx, "root", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login(ctx, "nobody", "s3cret"), ErrInvalidCredentials)
}

func TestFacultyRegister(t *testing.T) {
	ctx := context.Background()
	store := &fakeFacultyStore{faculty: map[string]*Faculty{}}
	svc := &FacultyService{store: store, deadlines: &fakeDeadlines{}, logger: zap.NewNop()}

	req := FacultyRegisterRequest{Name: "Dr. Rao", Department: "CSE", Username: "rao", Password: "pass"}
	require.NoError(t, svc.Register(ctx, req))

	created := store.faculty["rao"]
	require.NotNil(t, created)
	assert.False(t, created.Approved)
	assert.Empty(t, created.SubjectPreferences)
	assert.NotEqual(t, "pass", created.PasswordHash)
	assert.True(t, CheckPasswordHash("pass", created.PasswordHash))

	assert.ErrorIs(t, svc.Register(ctx, req), ErrFacultyExists)
}

func TestFacultyLoginApprovalGate(t *testing.T) {
	ctx := context.Background()
	store := &fakeFacultyStore{faculty: map[string]*Faculty{
		"pending":  {Username: "pending", PasswordHash: mustHash(t, "pass"), Approved: false},
		"approved": {Username: "approved", PasswordHash: mustHash(t, "pass"), Approved: true},
	}}
	svc := &FacultyService{store: store, deadlines: &fakeDeadlines{}, logger: zap.NewNop()}

	// the approval gate fires before the password is checked
	assert.ErrorIs(t, svc.Login(ctx, "pending", "pass"), ErrNotApproved)
	assert.ErrorIs(t, svc.Login(ctx, "pending", "wrong"), ErrNotApproved)

	assert.NoError(t, svc.Login(ctx, "approved", "pass"))
	assert.ErrorIs(t, svc.Login(ctx, "approved", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login(ctx, "ghost", "pass"), ErrInvalidCredentials)
}

func TestFacultyApprove(t *testing.T) {
	ctx := context.Background()
	store := &fakeFacultyStore{faculty: map[string]*Faculty{}}
	svc := &FacultyService{store: store, deadlines: &fakeDeadlines{}, logger: zap.NewNop()}

	require.NoError(t, svc.Register(ctx, FacultyRegisterRequest{Name: "Dr. Rao", Department: "CSE", Username: "rao", Password: "pass"}))

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, svc.Approve(ctx, pending[0].ID))

	approved, err := svc.Approved(ctx)
	require.NoError(t, err)
	assert.Len(t, approved, 1)

	pending, err = svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSavePreferences(t *testing.T) {
	ctx := context.Background()
	prefs := []SubjectPreference{{Subject: "Algorithms", Priority: 1}, {Subject: "Databases", Priority: 2}}

	t.Run("no deadline set", func(t *testing.T) {
		store := &fakeFacultyStore{faculty: map[string]*Faculty{"rao": {Username: "rao"}}}
		svc := &FacultyService{store: store, deadlines: &fakeDeadlines{}, logger: zap.NewNop()}

		require.NoError(t, svc.SavePreferences(ctx, "rao", prefs))
		assert.Equal(t, prefs, store.faculty["rao"].SubjectPreferences)
	})

	t.Run("before deadline", func(t *testing.T) {
		store := &fakeFacultyStore{faculty: map[string]*Faculty{"rao": {Username: "rao"}}}
		deadlines := &fakeDeadlines{deadline: time.Now().Add(time.Hour), set: true}
		svc := &FacultyService{store: store, deadlines: deadlines, logger: zap.NewNop()}

		assert.NoError(t, svc.SavePreferences(ctx, "rao", prefs))
	})

	t.Run("after deadline", func(t *testing.T) {
		store := &fakeFacultyStore{faculty: map[string]*Faculty{"rao": {Username: "rao"}}}
		deadlines := &fakeDeadlines{deadline: time.Now().Add(-time.Hour), set: true}
		svc := &FacultyService{store: store, deadlines: deadlines, logger: zap.NewNop()}

		assert.ErrorIs(t, svc.SavePreferences(ctx, "rao", prefs), ErrDeadlinePassed)
	})

	t.Run("unknown faculty", func(t *testing.T) {
		store := &fakeFacultyStore{faculty: map[string]*Faculty{}}
		svc := &FacultyService{store: store, deadlines: &fakeDeadlines{}, logger: zap.NewNop()}

		assert.ErrorIs(t, svc.SavePreferences(ctx, "ghost", prefs), ErrFacultyNotFound)
	})
}

func TestStudentLogin(t *testing.T) {
	ctx := context.Background()
	store := &fakeStudentLoginStore{students: map[string]*Student{
		"asha@example.com": {Name: "Asha Rao", Email: "asha@example.com", RegNo: "REG100", PasswordHash: mustHash(t, "REG100")},
	}}
	svc := &StudentService{store: store, logger: zap.NewNop()}

	// email is trimmed and lowercased before lookup; the initial password
	// is the registration number
	student, err := svc.Login(ctx, " Asha@Example.com ", "REG100")
	require.NoError(t, err)
	assert.Equal(t, "REG100", student.RegNo)

	_, err = svc.Login(ctx, "asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost@example.com", "REG100")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
