package models

import (
	"time"

	"devcamper/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var MinimumSkills = []string{"beginner", "intermediate", "advanced"}

type Course struct {
	ID                   primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title                string             `json:"title" bson:"title"`
	Description          string             `json:"description" bson:"description"`
	Weeks                string             `json:"weeks" bson:"weeks"`
	Tuition              float64            `json:"tuition" bson:"tuition"`
	MinimumSkill         string             `json:"minimumSkill" bson:"minimumSkill"`
	ScholarshipAvailable bool               `json:"scholarshipAvailable" bson:"scholarshipAvailable"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt"`
	Bootcamp             primitive.ObjectID `json:"bootcamp" bson:"bootcamp"`
}

var CourseSchema = domain.Schema{
	"_id":                  domain.KindObjectID,
	"tuition":              domain.KindNumber,
	"scholarshipAvailable": domain.KindBool,
	"createdAt":            domain.KindDate,
	"bootcamp":             domain.KindObjectID,
}

type CoursePayload struct {
	Title                string  `json:"title" binding:"required"`
	Description          string  `json:"description" binding:"required"`
	Weeks                string  `json:"weeks" binding:"required"`
	Tuition              float64 `json:"tuition" binding:"required,min=0"`
	MinimumSkill         string  `json:"minimumSkill" binding:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

func (p CoursePayload) Course(bootcamp primitive.ObjectID, now time.Time) Course {
	return Course{
		Title:                p.Title,
		Description:          p.Description,
		Weeks:                p.Weeks,
		Tuition:              p.Tuition,
		MinimumSkill:         p.MinimumSkill,
		ScholarshipAvailable: p.ScholarshipAvailable,
		CreatedAt:            now.UTC(),
		Bootcamp:             bootcamp,
	}
}

type CoursePatch struct {
	Title                *string  `json:"title" bson:"title,omitempty" binding:"omitempty,min=1"`
	Description          *string  `json:"description" bson:"description,omitempty" binding:"omitempty,min=1"`
	Weeks                *string  `json:"weeks" bson:"weeks,omitempty" binding:"omitempty,min=1"`
	Tuition              *float64 `json:"tuition" bson:"tuition,omitempty" binding:"omitempty,min=0"`
	MinimumSkill         *string  `json:"minimumSkill" bson:"minimumSkill,omitempty" binding:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable" bson:"scholarshipAvailable,omitempty"`
}
