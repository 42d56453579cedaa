package middleware

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var allowedDocumentTypes = map[string]bool{
	"CC": true,
	"CE": true,
	"TI": true,
	"PA": true,
	"RC": true,
	"MS": true,
}

// ValidateDocumentType checks the identity document type abbreviation
func ValidateDocumentType(docType string) error {
	if docType == "" {
		return nil // optional field, absent means the check is skipped
	}

	if !allowedDocumentTypes[strings.ToUpper(docType)] {
		return fmt.Errorf("invalid document type: %s (allowed: CC, CE, TI, PA, RC, MS)", docType)
	}
	return nil
}

// ValidateDocumentNumber validates an identity document number
func ValidateDocumentNumber(number string) error {
	if number == "" {
		return nil // optional field
	}

	// Colombian document numbers are digits, passports allow letters
	pattern := `^[a-zA-Z0-9]{4,20}$`
	matched, _ := regexp.MatchString(pattern, number)
	if !matched {
		return fmt.Errorf("invalid document number format (alphanumeric, 4-20 chars)")
	}
	return nil
}

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}

	// Allow alphanumeric, dash, underscore (max 64 chars)
	pattern := `^[a-zA-Z0-9_-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, tenant)
	if !matched {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}

	return nil
}

// ValidateAnalysisID validates analysis ID format
func ValidateAnalysisID(id string) error {
	if id == "" {
		return fmt.Errorf("analysis ID cannot be empty")
	}

	pattern := `^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`
	matched, _ := regexp.MatchString(pattern, strings.ToLower(id))
	if !matched {
		return fmt.Errorf("invalid analysis ID format")
	}

	return nil
}

var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// ValidateUploadFilename checks the uploaded certificate file name
func ValidateUploadFilename(name string) error {
	if name == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	cleaned := filepath.Base(name)
	if strings.Contains(cleaned, "..") {
		return fmt.Errorf("path traversal detected")
	}

	ext := strings.ToLower(filepath.Ext(cleaned))
	if !allowedUploadExtensions[ext] {
		return fmt.Errorf("unsupported file type: %s (allowed: pdf, png, jpg, jpeg)", ext)
	}

	dangerous := []string{"$(", "`", "&", "|", ";", "\n", "\r"}
	for _, d := range dangerous {
		if strings.Contains(name, d) {
			return fmt.Errorf("invalid characters in filename")
		}
	}

	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidateDays validates days parameter
func ValidateDays(days int) int {
	if days <= 0 {
		return 7 // default
	}
	if days > 365 {
		return 365 // max 1 year
	}
	return days
}
