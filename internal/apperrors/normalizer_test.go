package apperrors

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNormalizeKnownCodes(t *testing.T) {
	cases := []struct {
		code      string
		wantTitle string
		wantType  Kind
	}{
		{"23505", "Duplicate Entry", KindDuplicate},
		{"23514", "Invalid Data", KindValidation},
		{"23503", "Reference Error", KindForeignKey},
		{"42P01", "Schema Mismatch", KindMissingRelation},
		{"42501", "Permission Denied", KindPermission},
		{"08006", "Connection Failure", KindConnection},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			fe := Normalize(&pgconn.PgError{Code: tc.code, Message: "boom"})
			require.NotNil(t, fe)
			assert.Equal(t, tc.wantTitle, fe.Title)
			assert.Equal(t, tc.wantType, fe.Type)
		})
	}
}

func TestNormalizeSentinelsAndSubstrings(t *testing.T) {
	fe := Normalize(gorm.ErrRecordNotFound)
	assert.Equal(t, KindNotFound, fe.Type)

	fe = Normalize(context.DeadlineExceeded)
	assert.Equal(t, KindTimeout, fe.Type)

	fe = Normalize(errors.New("dial tcp 10.0.0.1:5432: connection refused"))
	assert.Equal(t, KindConnection, fe.Type)

	fe = Normalize(errors.New("validation failed on field premium"))
	assert.Equal(t, KindValidation, fe.Type)

	fe = Normalize(errors.New("some completely novel failure"))
	assert.Equal(t, KindUnknown, fe.Type)
	assert.Equal(t, "Unexpected Error", fe.Title)
}

func TestNormalizeNilAndPassthrough(t *testing.T) {
	assert.Nil(t, Normalize(nil))

	orig := &FriendlyError{Title: "X", Type: KindDuplicate, Severity: "warning"}
	assert.Same(t, orig, Normalize(orig))
}

func TestForOperationPreservesClassification(t *testing.T) {
	ops := []Operation{OpClientCreate, OpClientUpdate, OpConnection, OpTableCreate, OpAuth}
	codes := []struct {
		err      error
		wantType Kind
	}{
		{&pgconn.PgError{Code: "23505"}, KindDuplicate},
		{&pgconn.PgError{Code: "42501"}, KindPermission},
		{&pgconn.PgError{Code: "42P01"}, KindMissingRelation},
		{errors.New("timeout waiting for response"), KindTimeout},
	}
	for _, op := range ops {
		for _, c := range codes {
			fe := ForOperation(c.err, op)
			base := Normalize(c.err)
			assert.Equal(t, c.wantType, fe.Type, "op %s", op)
			assert.Equal(t, base.Message, fe.Message, "op %s", op)
			assert.Equal(t, opOverrides[op].Title, fe.Title, "op %s", op)
			assert.Equal(t, opOverrides[op].Action, fe.Action, "op %s", op)
		}
	}
}

func TestForOperationUnknownOpFallsThrough(t *testing.T) {
	err := &pgconn.PgError{Code: "23505"}
	fe := ForOperation(err, Operation("bulk-import"))
	assert.Equal(t, "Duplicate Entry", fe.Title)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindDuplicate))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(KindPermission))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(KindConnection))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindUnknown))
}
