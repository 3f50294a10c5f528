// Package audit provides utilities for audit field enrichment in domain entities.
package audit

import (
	"context"

	"tarifario/internal/core/security"
)

// EnrichCreatedBy sets CreatedBy and UpdatedBy fields from context user ID.
// Use before persisting a new document.
//
// If userID is not in context, this is a no-op.
func EnrichCreatedBy(ctx context.Context, createdBy, updatedBy *string) {
	userID := security.GetUserID(ctx)
	if userID != "" && createdBy != nil && updatedBy != nil {
		*createdBy = userID
		*updatedBy = userID
	}
}

// EnrichUpdatedBy sets only the UpdatedBy field from context user ID.
// Use before persisting a modification.
//
// If userID is not in context, this is a no-op.
func EnrichUpdatedBy(ctx context.Context, updatedBy *string) {
	userID := security.GetUserID(ctx)
	if userID != "" && updatedBy != nil {
		*updatedBy = userID
	}
}
