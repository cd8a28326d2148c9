package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError_RecordNotFound(t *testing.T) {
	info := ParseError(gorm.ErrRecordNotFound, "product lookup")
	assert.Equal(t, ResourceNotFound, info.Code)
	assert.Equal(t, "Product not found", info.Message)

	info = ParseError(gorm.ErrRecordNotFound, "order lookup")
	assert.Equal(t, "Order not found", info.Message)
}

func TestParseError_DuplicateKey(t *testing.T) {
	err := errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)
	info := ParseError(err, "user create")
	assert.Equal(t, AuthEmailAlreadyExists, info.Code)

	err = errors.New(`ERROR: duplicate key value violates unique constraint "idx_carts_user_id" (SQLSTATE 23505)`)
	info = ParseError(err, "cart create")
	assert.Equal(t, ResourceAlreadyExists, info.Code)
	assert.Contains(t, info.Message, "cart")
}

func TestParseError_ForeignKey(t *testing.T) {
	err := errors.New(`ERROR: insert or update on table "products" violates foreign key constraint "fk_categories_products" on column "category_id"`)
	info := ParseError(err, "product create")
	assert.Equal(t, CategoryNotFound, info.Code)
}

func TestParseError_HidesInternals(t *testing.T) {
	err := errors.New(`pq: SELECT * FROM secret_table failed with SQLSTATE XX000`)
	info := ParseError(err, "checkout")
	assert.Equal(t, InternalServerError, info.Code)
	assert.NotContains(t, info.Message, "secret_table")
	assert.NotContains(t, info.Message, "SQLSTATE")
}

func TestStatusForCode(t *testing.T) {
	assert.Equal(t, 404, statusForCode(ProductNotFound))
	assert.Equal(t, 409, statusForCode(AuthEmailAlreadyExists))
	assert.Equal(t, 400, statusForCode(ValidationRequired))
	assert.Equal(t, 502, statusForCode(InternalExternalAPI))
	assert.Equal(t, 500, statusForCode(InternalServerError))
}
