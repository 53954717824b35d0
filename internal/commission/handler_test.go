package commission

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateRejectsNegativePremium(t *testing.T) {
	h := NewHandler(nil)
	req := httptest.NewRequest("POST", "/commissions",
		strings.NewReader(`{"dealId": 1, "premium": -5000, "rate": 0.1}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "premium")
}

func TestCreateRejectsOutOfRangeRate(t *testing.T) {
	h := NewHandler(nil)
	req := httptest.NewRequest("POST", "/commissions",
		strings.NewReader(`{"dealId": 1, "premium": 5000, "rate": 1.5}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate")
}
