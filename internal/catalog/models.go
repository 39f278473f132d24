package catalog

import "go.mongodb.org/mongo-driver/bson/primitive"

// Subject is identified by the (upper-cased department, semester, name)
// triple; uniqueness is enforced by an existence check before insert.
type Subject struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Department string             `bson:"department" json:"department"`
	Semester   int                `bson:"semester" json:"semester"`
	Name       string             `bson:"name" json:"name"`
}

// Setting is a generic key/value document; the settings collection holds
// at most one document per key via upserts.
type Setting struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Key   string             `bson:"key" json:"key"`
	Value interface{}        `bson:"value" json:"value"`
}

// PreferenceDeadlineKey is the well-known settings key for the subject
// preference deadline.
const PreferenceDeadlineKey = "preferenceDeadline"

type AddSubjectRequest struct {
	Department string `json:"department"`
	Semester   int    `json:"semester"`
	Subject    string `json:"subject"`
}

type DeleteSubjectRequest struct {
	Department string `json:"department"`
	Semester   int    `json:"semester"`
	Subject    string `json:"subject"`
}

type SetDeadlineRequest struct {
	Deadline string `json:"deadline"`
}
