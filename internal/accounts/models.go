package accounts

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a back-office account. The reset token fields exist in the
// stored documents but no flow populates or consumes them yet.
type Admin struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username         string             `bson:"username" json:"username"`
	PasswordHash     string             `bson:"password" json:"-"`
	ResetToken       string             `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpiry time.Time          `bson:"resetTokenExpiry,omitempty" json:"-"`
}

// SubjectPreference is one entry of a faculty member's ordered wish list.
type SubjectPreference struct {
	Subject  string `bson:"subject" json:"subject"`
	Priority int    `bson:"priority" json:"priority"`
}

// Faculty self-registers and stays locked out until an admin approves.
type Faculty struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Username           string              `bson:"username" json:"username"`
	PasswordHash       string              `bson:"password" json:"-"`
	Name               string              `bson:"name" json:"name"`
	Department         string              `bson:"department" json:"department"`
	Approved           bool                `bson:"approved" json:"approved"`
	SubjectPreferences []SubjectPreference `bson:"subjectPreferences" json:"subjectPreferences"`
}

// Student records are only ever created by the bulk roster import; the
// initial password is the registration number, hashed.
type Student struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RollNo       string             `bson:"rollNo" json:"rollNo"`
	Name         string             `bson:"name" json:"name"`
	RegNo        string             `bson:"regNo" json:"regNo"`
	Mobile       string             `bson:"mobile" json:"mobile"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type FacultyRegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type ProfileRequest struct {
	Username string `json:"username" validate:"required"`
}

type PreferencesRequest struct {
	Username    string              `json:"username" validate:"required"`
	Preferences []SubjectPreference `json:"preferences"`
}

type ApproveFacultyRequest struct {
	FacultyID string `json:"facultyId" validate:"required"`
}

type StudentLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
