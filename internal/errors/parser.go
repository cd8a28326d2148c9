package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string // error code (see codes.go)
	Message string // user-facing message
}

// ParseError converts low-level errors into a user-facing code and message.
// Sensitive details stay hidden while the user still learns enough to act.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL errors

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
		return parseNotNullError(errStr)
	}

	// 2-4. Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return parseCheckConstraintError(errStr)
	}

	// 3. Network errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "An external service is unreachable. Please try again later",
		}
	}

	// 4. Default internal error
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// parseDuplicateKeyError handles unique constraint violations
func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// duplicate email
	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email address is already in use",
		}
	}

	// one cart per user
	if strings.Contains(errLower, "idx_carts_user_id") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A cart already exists for this user",
		}
	}

	// one line per product per cart
	if strings.Contains(errLower, "idx_cart_items_cart_product") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This product is already in the cart",
		}
	}

	// category names are unique among siblings
	if strings.Contains(errLower, "categories") && strings.Contains(errLower, "name") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A category with this name already exists",
		}
	}

	// primary key collision
	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This record already exists. Please try again",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

// parseForeignKeyError handles foreign key constraint violations
func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// deleting a row that is still referenced
	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		if strings.Contains(context, "category") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "This category still has products or subcategories and cannot be deleted",
			}
		}
		if strings.Contains(context, "product") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "This product is referenced by carts or orders and cannot be deleted",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "This record is still referenced and cannot be deleted",
		}
	}

	// referencing a row that does not exist
	if strings.Contains(errLower, "user_id") || strings.Contains(errLower, "client_id") || strings.Contains(errLower, "fk_users") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "This user does not exist",
		}
	}
	if strings.Contains(errLower, "product_id") || strings.Contains(errLower, "fk_products") {
		return ErrorInfo{
			Code:    ProductNotFound,
			Message: "This product does not exist",
		}
	}
	if strings.Contains(errLower, "category_id") || strings.Contains(errLower, "dad_id") || strings.Contains(errLower, "fk_categories") {
		return ErrorInfo{
			Code:    CategoryNotFound,
			Message: "This category does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record could not be found",
	}
}

// parseNotNullError handles not-null constraint violations
func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "Email is required"}
	}
	if strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "Password is required"}
	}
	if strings.Contains(errLower, "name") {
		return ErrorInfo{Code: ValidationRequired, Message: "Name is required"}
	}
	if strings.Contains(errLower, "price") {
		return ErrorInfo{Code: ValidationRequired, Message: "Price is required"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "A required field is missing",
	}
}

// parseCheckConstraintError handles check constraint violations
func parseCheckConstraintError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "quantity") {
		return ErrorInfo{
			Code:    ValidationInvalidRange,
			Message: "Quantity must be greater than zero",
		}
	}
	if strings.Contains(errLower, "price") {
		return ErrorInfo{
			Code:    ValidationInvalidRange,
			Message: "Price must be greater than zero",
		}
	}
	if strings.Contains(errLower, "discount") {
		return ErrorInfo{
			Code:    ValidationInvalidRange,
			Message: "Discount must be between 0 and 100",
		}
	}

	return ErrorInfo{
		Code:    ValidationInvalidInput,
		Message: "Invalid input",
	}
}

// getNotFoundMessage picks a not-found message by context
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") {
		return "Product not found"
	}
	if strings.Contains(contextLower, "category") {
		return "Category not found"
	}
	if strings.Contains(contextLower, "cart") {
		return "Cart not found"
	}
	if strings.Contains(contextLower, "order") {
		return "Order not found"
	}
	if strings.Contains(contextLower, "user") {
		return "User not found"
	}
	if strings.Contains(contextLower, "issue") {
		return "Issue report not found"
	}

	return "The requested record could not be found"
}

// getDefaultErrorMessage picks a fallback message by context
func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "Creation failed. Please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "Update failed. Please try again later"
	}
	if strings.Contains(contextLower, "delete") {
		return "Deletion failed. Please try again later"
	}
	if strings.Contains(contextLower, "checkout") {
		return "Checkout failed. Please try again later"
	}

	return "Something went wrong. Please try again later"
}
