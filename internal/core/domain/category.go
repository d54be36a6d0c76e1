package domain

// CategoryRule declares what a single upload category accepts: an allow-list
// of MIME types and a ceiling on the declared file size.
type CategoryRule struct {
	AllowedTypes []string
	MaxBytes     int64
}

// Categories maps a category name to its validation rule. The table is handed
// to the upload service at construction; the pipeline itself stays agnostic of
// specific business categories.
type Categories map[string]CategoryRule

// Allows reports whether the rule accepts the given MIME type. An empty
// allow-list accepts any type.
func (r CategoryRule) Allows(mimeType string) bool {
	if len(r.AllowedTypes) == 0 {
		return true
	}
	for _, t := range r.AllowedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

// DefaultCategories returns the platform's standard category table.
func DefaultCategories() Categories {
	return Categories{
		"course-resource": {
			AllowedTypes: []string{
				"application/pdf",
				"application/zip",
				"image/jpeg",
				"image/png",
				"video/mp4",
				"video/webm",
			},
			MaxBytes: 500 << 20, // 500MB, course videos
		},
		"profile-picture": {
			AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"},
			MaxBytes:     10 << 20,
		},
		"document": {
			AllowedTypes: []string{"application/pdf"},
			MaxBytes:     50 << 20,
		},
		"company-logo": {
			AllowedTypes: []string{"image/jpeg", "image/png", "image/svg+xml"},
			MaxBytes:     5 << 20,
		},
	}
}
