package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Course represents a catalog entry exposed to browsers. Tags and
// WhatYoullLearn are logically arrays but physically stored as
// JSON-serialized text columns.
type Course struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	Image           string    `json:"image"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	Instructor      string    `json:"instructor"`
	Duration        string    `json:"duration"`
	Students        int       `json:"students"`
	Rating          float64   `json:"rating"`
	ExternalLink    string    `json:"externalLink"`
	FullDescription string    `json:"fullDescription"`
	Prerequisites   string    `json:"prerequisites"`
	Level           string    `json:"level"`
	Language        string    `json:"language"`
	LastUpdated     string    `json:"lastUpdated"`
	Certificate     bool      `json:"certificate"`
	WhatYoullLearn  []string  `json:"whatYoullLearn"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ListOptions represents filtering and ordering for course listings.
type ListOptions struct {
	Category  string
	SortBy    string
	SortOrder string
	Limit     int
}

// CreateCourseRequest carries multipart form fields for course creation.
// Tags and WhatYoullLearn arrive as serialized text and are normalized by
// ParseStringList before storage.
type CreateCourseRequest struct {
	Title           string  `form:"title" binding:"required,max=300"`
	Description     string  `form:"description"`
	Category        string  `form:"category"`
	Tags            string  `form:"tags"`
	Instructor      string  `form:"instructor"`
	Duration        string  `form:"duration"`
	Students        int     `form:"students"`
	Rating          float64 `form:"rating" binding:"gte=0,lte=5"`
	ExternalLink    string  `form:"externalLink"`
	FullDescription string  `form:"fullDescription"`
	Prerequisites   string  `form:"prerequisites"`
	Level           string  `form:"level"`
	Language        string  `form:"language"`
	LastUpdated     string  `form:"lastUpdated"`
	Certificate     bool    `form:"certificate"`
	WhatYoullLearn  string  `form:"whatYoullLearn"`
	Image           string  `form:"image"`
	Slug            string  `form:"slug"`
}

// UpdateCourseRequest carries partial multipart form fields; only supplied
// fields are changed (last-writer-wins, no optimistic concurrency token).
type UpdateCourseRequest struct {
	Title           *string  `form:"title" binding:"omitempty,max=300"`
	Description     *string  `form:"description"`
	Category        *string  `form:"category"`
	Tags            *string  `form:"tags"`
	Instructor      *string  `form:"instructor"`
	Duration        *string  `form:"duration"`
	Students        *int     `form:"students"`
	Rating          *float64 `form:"rating" binding:"omitempty,gte=0,lte=5"`
	ExternalLink    *string  `form:"externalLink"`
	FullDescription *string  `form:"fullDescription"`
	Prerequisites   *string  `form:"prerequisites"`
	Level           *string  `form:"level"`
	Language        *string  `form:"language"`
	LastUpdated     *string  `form:"lastUpdated"`
	Certificate     *bool    `form:"certificate"`
	WhatYoullLearn  *string  `form:"whatYoullLearn"`
	Image           *string  `form:"image"`
	Slug            *string  `form:"slug"`
}

// CourseResponse wraps a mutated course together with a human message.
type CourseResponse struct {
	Message string  `json:"message"`
	Course  *Course `json:"course"`
}

// ParseStringList normalizes a list-valued field arriving from a client.
// Contract: accepts JSON array text, comma-separated text, or an empty
// value; always returns a non-nil slice. Garbage input degrades to the
// comma-split interpretation; a blank input yields [].
func ParseStringList(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{}
	}

	if strings.HasPrefix(value, "[") {
		var items []string
		if err := json.Unmarshal([]byte(value), &items); err == nil {
			out := make([]string, 0, len(items))
			for _, item := range items {
				item = strings.TrimSpace(item)
				if item != "" {
					out = append(out, item)
				}
			}
			return out
		}
	}

	out := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// SerializeStringList converts a list to the JSON text stored in the
// database. nil serializes as [].
func SerializeStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		// Marshaling a []string cannot fail; keep the stored value valid anyway
		return "[]"
	}
	return string(data)
}

// DeserializeStringList converts stored text back to a list, defaulting to
// [] on NULL or parse failure.
func DeserializeStringList(stored *string) []string {
	if stored == nil || strings.TrimSpace(*stored) == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(*stored), &items); err != nil {
		return []string{}
	}
	if items == nil {
		return []string{}
	}
	return items
}
