package models

import (
	"time"

	"devcamper/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultPhoto = "no-photo.jpg"

// Careers accepted on a bootcamp.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

// GeoLocation is a GeoJSON point plus the address parts returned by the geocoder.
type GeoLocation struct {
	Type             string    `json:"type" bson:"type"`
	Coordinates      []float64 `json:"coordinates" bson:"coordinates"`
	FormattedAddress string    `json:"formattedAddress,omitempty" bson:"formattedAddress,omitempty"`
	Street           string    `json:"street,omitempty" bson:"street,omitempty"`
	City             string    `json:"city,omitempty" bson:"city,omitempty"`
	State            string    `json:"state,omitempty" bson:"state,omitempty"`
	Zipcode          string    `json:"zipcode,omitempty" bson:"zipcode,omitempty"`
	Country          string    `json:"country,omitempty" bson:"country,omitempty"`
}

type Bootcamp struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Slug          string             `json:"slug,omitempty" bson:"slug,omitempty"`
	Description   string             `json:"description" bson:"description"`
	Website       string             `json:"website,omitempty" bson:"website,omitempty"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	Location      *GeoLocation       `json:"location,omitempty" bson:"location,omitempty"`
	Careers       []string           `json:"careers" bson:"careers"`
	AverageRating *float64           `json:"averageRating,omitempty" bson:"averageRating,omitempty"`
	AverageCost   *float64           `json:"averageCost,omitempty" bson:"averageCost,omitempty"`
	Photo         string             `json:"photo" bson:"photo"`
	Housing       bool               `json:"housing" bson:"housing"`
	JobAssistance bool               `json:"jobAssistance" bson:"jobAssistance"`
	JobGuarantee  bool               `json:"jobGuarantee" bson:"jobGuarantee"`
	AcceptGi      bool               `json:"acceptGi" bson:"acceptGi"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// BootcampSchema drives casting of list filters on the bootcamps collection.
var BootcampSchema = domain.Schema{
	"_id":                  domain.KindObjectID,
	"averageRating":        domain.KindNumber,
	"averageCost":          domain.KindNumber,
	"housing":              domain.KindBool,
	"jobAssistance":        domain.KindBool,
	"jobGuarantee":         domain.KindBool,
	"acceptGi":             domain.KindBool,
	"createdAt":            domain.KindDate,
	"location.coordinates": domain.KindNumber,
}

// BootcampPayload is the body accepted on create.
type BootcampPayload struct {
	Name          string   `json:"name" binding:"required,max=50"`
	Description   string   `json:"description" binding:"required,max=500"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone" binding:"omitempty,max=20"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address" binding:"required"`
	Careers       []string `json:"careers" binding:"required,min=1,dive,oneof='Web Development' 'Mobile Development' 'UI/UX' 'Data Science' 'Business' 'Other'"`
	AverageRating *float64 `json:"averageRating" binding:"omitempty,min=1,max=10"`
	AverageCost   *float64 `json:"averageCost" binding:"omitempty,min=0"`
	Photo         string   `json:"photo"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

// Bootcamp builds a new document from the payload; the caller sets slug and location.
func (p BootcampPayload) Bootcamp(now time.Time) Bootcamp {
	photo := p.Photo
	if photo == "" {
		photo = DefaultPhoto
	}
	return Bootcamp{
		Name:          p.Name,
		Description:   p.Description,
		Website:       p.Website,
		Phone:         p.Phone,
		Email:         p.Email,
		Address:       p.Address,
		Careers:       p.Careers,
		AverageRating: p.AverageRating,
		AverageCost:   p.AverageCost,
		Photo:         photo,
		Housing:       p.Housing,
		JobAssistance: p.JobAssistance,
		JobGuarantee:  p.JobGuarantee,
		AcceptGi:      p.AcceptGi,
		CreatedAt:     now.UTC(),
	}
}

// BootcampPatch is the body accepted on update. Only supplied fields are
// validated and written.
type BootcampPatch struct {
	Name          *string      `json:"name" bson:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Slug          *string      `json:"-" bson:"slug,omitempty"`
	Description   *string      `json:"description" bson:"description,omitempty" binding:"omitempty,min=1,max=500"`
	Website       *string      `json:"website" bson:"website,omitempty" binding:"omitempty,url"`
	Phone         *string      `json:"phone" bson:"phone,omitempty" binding:"omitempty,max=20"`
	Email         *string      `json:"email" bson:"email,omitempty" binding:"omitempty,email"`
	Address       *string      `json:"address" bson:"address,omitempty" binding:"omitempty,min=1"`
	Location      *GeoLocation `json:"-" bson:"location,omitempty"`
	Careers       []string     `json:"careers" bson:"careers,omitempty" binding:"omitempty,dive,oneof='Web Development' 'Mobile Development' 'UI/UX' 'Data Science' 'Business' 'Other'"`
	AverageRating *float64     `json:"averageRating" bson:"averageRating,omitempty" binding:"omitempty,min=1,max=10"`
	AverageCost   *float64     `json:"averageCost" bson:"averageCost,omitempty" binding:"omitempty,min=0"`
	Photo         *string      `json:"photo" bson:"photo,omitempty"`
	Housing       *bool        `json:"housing" bson:"housing,omitempty"`
	JobAssistance *bool        `json:"jobAssistance" bson:"jobAssistance,omitempty"`
	JobGuarantee  *bool        `json:"jobGuarantee" bson:"jobGuarantee,omitempty"`
	AcceptGi      *bool        `json:"acceptGi" bson:"acceptGi,omitempty"`
}
