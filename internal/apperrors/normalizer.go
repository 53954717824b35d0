package apperrors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies a failure into the user-facing taxonomy.
type Kind string

const (
	KindDuplicate       Kind = "duplicate_entry"
	KindValidation      Kind = "invalid_data"
	KindPermission      Kind = "permission_denied"
	KindMissingRelation Kind = "missing_relation"
	KindForeignKey      Kind = "reference_error"
	KindConnection      Kind = "connection_failure"
	KindTimeout         Kind = "timeout"
	KindNotFound        Kind = "not_found"
	KindUnknown         Kind = "unknown"
)

// FriendlyError is the normalized shape surfaced to API clients.
type FriendlyError struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     Kind   `json:"type"`
	Severity string `json:"severity"`
	Action   string `json:"action,omitempty"`
}

func (e *FriendlyError) Error() string {
	return e.Title + ": " + e.Message
}

// SQLSTATE classes the normalizer recognizes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeUndefinedTable      = "42P01"
	codePermissionDenied    = "42501"
)

// Normalize maps an arbitrary failure to a FriendlyError. Classification order:
// gorm sentinels, Postgres SQLSTATE, message substrings, generic fallback.
func Normalize(err error) *FriendlyError {
	if err == nil {
		return nil
	}
	var fe *FriendlyError
	if errors.As(err, &fe) {
		return fe
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &FriendlyError{
			Title:    "Not Found",
			Message:  "The requested record does not exist.",
			Type:     KindNotFound,
			Severity: "warning",
			Action:   "Refresh the list and try again.",
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return &FriendlyError{
				Title:    "Duplicate Entry",
				Message:  "A record with these details already exists.",
				Type:     KindDuplicate,
				Severity: "warning",
				Action:   "Check for an existing record before creating a new one.",
			}
		case pgErr.Code == codeCheckViolation:
			return &FriendlyError{
				Title:    "Invalid Data",
				Message:  "One or more fields contain values outside the allowed range.",
				Type:     KindValidation,
				Severity: "error",
				Action:   "Correct the highlighted fields and retry.",
			}
		case pgErr.Code == codeForeignKeyViolation:
			return &FriendlyError{
				Title:    "Reference Error",
				Message:  "The record refers to a related record that does not exist, or is still referenced by other records.",
				Type:     KindForeignKey,
				Severity: "error",
				Action:   "Verify the related records before retrying.",
			}
		case pgErr.Code == codeUndefinedTable:
			return &FriendlyError{
				Title:    "Schema Mismatch",
				Message:  "A required table is missing from the database.",
				Type:     KindMissingRelation,
				Severity: "error",
				Action:   "Run the table checker and apply the missing migrations.",
			}
		case pgErr.Code == codePermissionDenied:
			return &FriendlyError{
				Title:    "Permission Denied",
				Message:  "Your account is not allowed to perform this operation.",
				Type:     KindPermission,
				Severity: "error",
				Action:   "Contact an administrator if you believe this is a mistake.",
			}
		case strings.HasPrefix(pgErr.Code, "08"):
			return &FriendlyError{
				Title:    "Connection Failure",
				Message:  "Could not reach the database.",
				Type:     KindConnection,
				Severity: "error",
				Action:   "Check the connection settings and try again.",
			}
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return &FriendlyError{
			Title:    "Operation Timed Out",
			Message:  "The operation took too long to complete.",
			Type:     KindTimeout,
			Severity: "warning",
			Action:   "Try again in a moment.",
		}
	case strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network"):
		return &FriendlyError{
			Title:    "Connection Failure",
			Message:  "Could not reach the backend service.",
			Type:     KindConnection,
			Severity: "error",
			Action:   "Check your network connection and try again.",
		}
	case strings.Contains(msg, "validation") || strings.Contains(msg, "invalid"):
		return &FriendlyError{
			Title:    "Invalid Data",
			Message:  err.Error(),
			Type:     KindValidation,
			Severity: "error",
			Action:   "Correct the submitted values and retry.",
		}
	}

	return &FriendlyError{
		Title:    "Unexpected Error",
		Message:  "Something went wrong. Please try again.",
		Type:     KindUnknown,
		Severity: "error",
	}
}

// Operation tags for operation-specific overrides.
type Operation string

const (
	OpClientCreate Operation = "client-create"
	OpClientUpdate Operation = "client-update"
	OpConnection   Operation = "db-connection"
	OpTableCreate  Operation = "table-create"
	OpAuth         Operation = "auth"
)

var opOverrides = map[Operation]struct {
	Title  string
	Action string
}{
	OpClientCreate: {"Could Not Create Client", "Review the client details and try again."},
	OpClientUpdate: {"Could Not Update Client", "Reload the client record and reapply your changes."},
	OpConnection:   {"Database Connection Problem", "Verify the database settings on the connection test page."},
	OpTableCreate:  {"Table Setup Failed", "Copy the generated SQL and run it manually."},
	OpAuth:         {"Sign-In Problem", "Check your credentials or reset your password."},
}

// ForOperation normalizes err and then overrides Title/Action for the given
// operation tag. Type, Message and Severity keep the underlying classification.
func ForOperation(err error, op Operation) *FriendlyError {
	fe := Normalize(err)
	if fe == nil {
		return nil
	}
	if o, ok := opOverrides[op]; ok {
		out := *fe
		out.Title = o.Title
		out.Action = o.Action
		return &out
	}
	return fe
}

// HTTPStatus maps a Kind to the response status handlers should use.
func HTTPStatus(k Kind) int {
	switch k {
	case KindDuplicate:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindForeignKey:
		return http.StatusConflict
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindConnection, KindMissingRelation:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
