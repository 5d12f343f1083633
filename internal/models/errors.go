// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
)

// Error codes surfaced to API clients. Field validation fails fast: the
// first violated rule wins and the operation performs no writes.
const (
	ErrCodeRequired               = "REQUIRED"
	ErrCodeTooLong                = "TOO_LONG"
	ErrCodeInvalid                = "INVALID"
	ErrCodeNameConflict           = "NAME_CONFLICT"
	ErrCodeParentNotFound         = "PARENT_NOT_FOUND"
	ErrCodeParentCategoryMismatch = "PARENT_CATEGORY_MISMATCH"
	ErrCodeSelfParent             = "SELF_PARENT"
	ErrCodeCycleDetected          = "CYCLE_DETECTED"
	ErrCodeHasChildren            = "HAS_CHILDREN"
	ErrCodeHasItems               = "HAS_ITEMS"
	ErrCodeIsDefault              = "IS_DEFAULT"
	ErrCodeHasTranslations        = "HAS_TRANSLATIONS"
	ErrCodeItemNotFound           = "ITEM_NOT_FOUND"
	ErrCodeCategoryNotFound       = "CATEGORY_NOT_FOUND"
)

// FieldError is a validation or conflict error scoped to a single input
// field. Stores return it for every deterministic, user-correctable
// failure; infrastructure failures stay plain wrapped errors.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

// NewFieldError builds a FieldError for the given field and code.
func NewFieldError(field, code, message string) *FieldError {
	return &FieldError{Field: field, Code: code, Message: message}
}

// AsFieldError unwraps err into a *FieldError if it is one.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
