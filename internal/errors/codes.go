package errors

// Error code constants
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to localized messages

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token revoked
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access rights
	AuthzAccessDenied = "AUTHZ_ACCESS_DENIED"  // no permission for the operation
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role information missing
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // admin only
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"     // owner only

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // bad input
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // bad ID
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // bad format
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // out of range
	ValidationRequired      = "VALIDATION_REQUIRED"       // missing required field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"       // no such resource
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"  // already exists
	ResourceConflict      = "RESOURCE_CONFLICT"        // conflicting state

	// ==================== Cart (CART_) ====================
	CartNotFound     = "CART_NOT_FOUND"      // cart missing
	CartItemNotFound = "CART_ITEM_NOT_FOUND" // cart item missing
	CartEmpty        = "CART_EMPTY"          // cannot checkout an empty cart

	// ==================== Orders (ORDER_) ====================
	OrderNotFound          = "ORDER_NOT_FOUND"           // order missing
	OrderInvalidTransition = "ORDER_INVALID_TRANSITION"  // illegal status change
	OrderPaymentRequired   = "ORDER_PAYMENT_REQUIRED"    // payment not completed
	OrderPaymentFailed     = "ORDER_PAYMENT_FAILED"      // payment verification failed

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound    = "PRODUCT_NOT_FOUND"    // product missing
	ProductUnavailable = "PRODUCT_UNAVAILABLE"  // product not purchasable

	// ==================== Categories (CATEGORY_) ====================
	CategoryNotFound    = "CATEGORY_NOT_FOUND"     // category missing
	CategoryCycle       = "CATEGORY_CYCLE"         // parent link would create a cycle
	CategoryHasChildren = "CATEGORY_HAS_CHILDREN"  // cannot delete a category with children
	CategoryHasProducts = "CATEGORY_HAS_PRODUCTS"  // cannot delete a category with products

	// ==================== Issues (ISSUE_) ====================
	IssueNotFound = "ISSUE_NOT_FOUND" // issue report missing

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // bad file type
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"    // file too big
	UploadFailed          = "UPLOAD_FAILED"            // upload failed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // server error
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // database error
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // external API error
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // configuration error
)
