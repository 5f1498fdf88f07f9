package models

import (
	"errors"
	"fmt"
	"strings"
)

// CopyType selects the rendering policy of a generated FIR document
type CopyType string

// Predefined CopyType values
const (
	CopyTypeOriginal  CopyType = "original"
	CopyTypeCertified CopyType = "certified"
	CopyTypePublic    CopyType = "public"
	CopyTypeDraft     CopyType = "draft"
)

// ErrInvalidCopyType is returned when a copy type is not one of the predefined values
var ErrInvalidCopyType = errors.New("invalid copy type")

// ValidCopyTypes returns all valid CopyType values
func ValidCopyTypes() []CopyType {
	return []CopyType{
		CopyTypeOriginal,
		CopyTypeCertified,
		CopyTypePublic,
		CopyTypeDraft,
	}
}

// IsValid checks if the CopyType value is one of the predefined constants
func (t CopyType) IsValid() bool {
	for _, validType := range ValidCopyTypes() {
		if t == validType {
			return true
		}
	}
	return false
}

// Masked reports whether contact and identity numbers must be masked
func (t CopyType) Masked() bool {
	return t == CopyTypePublic
}

// ParseCopyType converts a query value into a CopyType. An empty value means
// the original copy.
func ParseCopyType(s string) (CopyType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CopyTypeOriginal, nil
	}
	t := CopyType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCopyType, s)
	}
	return t, nil
}
