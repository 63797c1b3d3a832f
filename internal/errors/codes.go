package errors

// Error code constants, format CATEGORY_SPECIFIC_DETAIL. The admin
// dashboard maps these codes to display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound    = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogCategoryNotFound   = "CATALOG_CATEGORY_NOT_FOUND"
	CatalogSKUExists          = "CATALOG_SKU_EXISTS"
	CatalogSlugExists         = "CATALOG_SLUG_EXISTS"
	CatalogLookupNotFound     = "CATALOG_LOOKUP_NOT_FOUND"
	CatalogLookupNameExists   = "CATALOG_LOOKUP_NAME_EXISTS"

	// ==================== Variations (VARIATION_) ====================
	VariationNotFound          = "VARIATION_NOT_FOUND"
	VariationCombinationExists = "VARIATION_COMBINATION_EXISTS"
	VariationSKUExists         = "VARIATION_SKU_EXISTS"

	// ==================== Media (MEDIA_) ====================
	MediaImageNotFound    = "MEDIA_IMAGE_NOT_FOUND"
	MediaInvalidFileType  = "MEDIA_INVALID_FILE_TYPE"
	MediaFileTooLarge     = "MEDIA_FILE_TOO_LARGE"
	MediaInvalidTag       = "MEDIA_INVALID_TAG"
	MediaFetchFailed      = "MEDIA_FETCH_FAILED"
	MediaStorageFailed    = "MEDIA_STORAGE_FAILED"

	// ==================== Homepage layout (LAYOUT_) ====================
	LayoutNotFound            = "LAYOUT_NOT_FOUND"
	LayoutInvalidGridPosition = "LAYOUT_INVALID_GRID_POSITION"
	LayoutInvalidSliderSpeed  = "LAYOUT_INVALID_SLIDER_SPEED"
	LayoutSlotOccupied        = "LAYOUT_SLOT_OCCUPIED"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"
	OrderInvalidStatus = "ORDER_INVALID_STATUS"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
