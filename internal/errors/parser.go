package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database and driver errors into a code and message
// the admin UI can show. Sensitive details stay out of the message.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An unexpected server error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM sentinel errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// 2. PostgreSQL constraint errors

	// 2-1. Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// 2-4. Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "A field value is out of range",
		}
	}

	// 3. Network errors from external fetches
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "An external service could not be reached. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: defaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "idx_variation_combination") {
		return ErrorInfo{
			Code:    VariationCombinationExists,
			Message: "A variation with this size and color already exists for this product",
		}
	}
	if strings.Contains(errLower, "product_variations") && strings.Contains(errLower, "sku") {
		return ErrorInfo{
			Code:    VariationSKUExists,
			Message: "This variation SKU is already in use",
		}
	}
	if strings.Contains(errLower, "idx_homepage_layouts_active_position") {
		return ErrorInfo{
			Code:    LayoutSlotOccupied,
			Message: "Another layout is already active in this grid position",
		}
	}
	if strings.Contains(errLower, "sku") {
		return ErrorInfo{
			Code:    CatalogSKUExists,
			Message: "This SKU is already in use",
		}
	}
	if strings.Contains(errLower, "slug") {
		return ErrorInfo{
			Code:    CatalogSlugExists,
			Message: "This slug is already in use",
		}
	}
	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email address is already registered",
		}
	}
	if strings.Contains(errLower, "sizes") || strings.Contains(errLower, "colors") {
		return ErrorInfo{
			Code:    CatalogLookupNameExists,
			Message: "A lookup entry with this name already exists",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "A record with these values already exists",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// Deleting a row that other rows still reference
	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "This record is still referenced and cannot be deleted",
		}
	}

	if strings.Contains(errLower, "product_id") {
		return ErrorInfo{Code: CatalogProductNotFound, Message: "The referenced product does not exist"}
	}
	if strings.Contains(errLower, "category_id") {
		return ErrorInfo{Code: CatalogCategoryNotFound, Message: "The referenced category does not exist"}
	}
	if strings.Contains(errLower, "size_id") || strings.Contains(errLower, "color_id") {
		return ErrorInfo{Code: CatalogLookupNotFound, Message: "The referenced size or color does not exist"}
	}
	if strings.Contains(errLower, "image_id") || strings.Contains(errLower, "cover_image_id") {
		return ErrorInfo{Code: MediaImageNotFound, Message: "The referenced image does not exist"}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record does not exist",
	}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "variation"):
		return "Variation not found"
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "category"):
		return "Category not found"
	case strings.Contains(contextLower, "image"), strings.Contains(contextLower, "media"):
		return "Image not found"
	case strings.Contains(contextLower, "layout"):
		return "Homepage layout not found"
	case strings.Contains(contextLower, "order"):
		return "Order not found"
	case strings.Contains(contextLower, "user"), strings.Contains(contextLower, "customer"):
		return "Customer not found"
	}

	return "The requested record was not found"
}

func defaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to create the record. Please try again later"
	case strings.Contains(contextLower, "update"):
		return "Failed to update the record. Please try again later"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete the record. Please try again later"
	case strings.Contains(contextLower, "import"):
		return "Import failed. Please try again later"
	}

	return "An unexpected server error occurred. Please try again later"
}
