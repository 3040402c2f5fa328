package model

import (
	"strings"
	"time"
)

// FieldMapType classifies the terrain of a playing field
type FieldMapType string

const (
	FieldMapTypeCQB   FieldMapType = "cqb"
	FieldMapTypeMisto FieldMapType = "misto"
	FieldMapTypeMato  FieldMapType = "mato"
	FieldMapTypeOther FieldMapType = "other"
)

// IsValid returns true if the type is one of the known terrain types
func (t FieldMapType) IsValid() bool {
	switch t {
	case FieldMapTypeCQB, FieldMapTypeMisto, FieldMapTypeMato, FieldMapTypeOther:
		return true
	default:
		return false
	}
}

// SocialLink points at a field's presence on an external platform
type SocialLink struct {
	Platform string `json:"platform" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,url,max=2048"`
}

// FieldMap is a playing field where games are held
type FieldMap struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	IsActive    bool         `json:"isActive"`
	Type        FieldMapType `json:"type"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	SocialLinks []SocialLink `json:"socialLinks"`
	CreatedBy   *string      `json:"createdBy,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Field map constraints
const (
	MaxFieldMapNameLength        = 200
	MaxFieldMapDescriptionLength = 5000
	MaxFieldMapLocationLength    = 500
)

// CreateFieldMapRequest represents a request to create a field map
type CreateFieldMapRequest struct {
	Name        string       `json:"name" validate:"required,max=200"`
	IsActive    *bool        `json:"isActive,omitempty"`
	Type        FieldMapType `json:"type,omitempty" validate:"omitempty,oneof=cqb misto mato other"`
	Description string       `json:"description,omitempty" validate:"max=5000"`
	Location    string       `json:"location,omitempty" validate:"max=500"`
	SocialLinks []SocialLink `json:"socialLinks,omitempty" validate:"omitempty,dive"`
	CreatedBy   *string      `json:"createdBy,omitempty" validate:"omitnil,max=200"`
}

// Validate trims string fields in place and checks every rule
func (r *CreateFieldMapRequest) Validate() []FieldError {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = FieldMapType(strings.TrimSpace(string(r.Type)))
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
	r.CreatedBy = blankToNil(r.CreatedBy)
	trimSocialLinks(r.SocialLinks)

	return ValidateStruct(r)
}

// FieldMap builds the document to persist, applying defaults
func (r *CreateFieldMapRequest) FieldMap() *FieldMap {
	fm := &FieldMap{
		Name:        r.Name,
		IsActive:    true,
		Type:        FieldMapTypeOther,
		Description: r.Description,
		Location:    r.Location,
		SocialLinks: make([]SocialLink, 0, len(r.SocialLinks)),
		CreatedBy:   r.CreatedBy,
	}
	if r.IsActive != nil {
		fm.IsActive = *r.IsActive
	}
	if r.Type != "" {
		fm.Type = r.Type
	}
	fm.SocialLinks = append(fm.SocialLinks, r.SocialLinks...)
	return fm
}

// UpdateFieldMapRequest carries a partial update. Nil fields are left unchanged;
// a non-nil SocialLinks replaces the whole list, so an empty one clears it.
// A nil SocialLinks encodes as null, which decodes back to nil.
type UpdateFieldMapRequest struct {
	Name        *string       `json:"name,omitempty" validate:"omitnil,min=1,max=200"`
	IsActive    *bool         `json:"isActive,omitempty"`
	Type        *FieldMapType `json:"type,omitempty" validate:"omitnil,oneof=cqb misto mato other"`
	Description *string       `json:"description,omitempty" validate:"omitnil,max=5000"`
	Location    *string       `json:"location,omitempty" validate:"omitnil,max=500"`
	SocialLinks []SocialLink  `json:"socialLinks" validate:"omitempty,dive"`
	CreatedBy   *string       `json:"createdBy,omitempty" validate:"omitnil,min=1,max=200"`
}

// Validate trims string fields in place and checks every rule
func (r *UpdateFieldMapRequest) Validate() []FieldError {
	trimPtr(r.Name)
	trimPtr(r.Description)
	trimPtr(r.Location)
	trimPtr(r.CreatedBy)
	if r.Type != nil {
		t := FieldMapType(strings.TrimSpace(string(*r.Type)))
		r.Type = &t
	}
	trimSocialLinks(r.SocialLinks)

	return ValidateStruct(r)
}

// Changes returns the document fields to overwrite, keyed by stored field name
func (r *UpdateFieldMapRequest) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.IsActive != nil {
		changes["isActive"] = *r.IsActive
	}
	if r.Type != nil {
		changes["type"] = string(*r.Type)
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Location != nil {
		changes["location"] = *r.Location
	}
	if r.SocialLinks != nil {
		changes["socialLinks"] = SocialLinkDocs(r.SocialLinks)
	}
	if r.CreatedBy != nil {
		changes["createdBy"] = *r.CreatedBy
	}
	return changes
}

// SocialLinkDocs converts links to plain documents, preserving order
func SocialLinkDocs(links []SocialLink) []map[string]interface{} {
	docs := make([]map[string]interface{}, 0, len(links))
	for _, l := range links {
		docs = append(docs, map[string]interface{}{
			"platform": l.Platform,
			"url":      l.URL,
		})
	}
	return docs
}

func trimSocialLinks(links []SocialLink) {
	for i := range links {
		links[i].Platform = strings.TrimSpace(links[i].Platform)
		links[i].URL = strings.TrimSpace(links[i].URL)
	}
}
