package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/ecoquiz/internal/bank"
)

func TestReloadFailureHidesSourceDetail(t *testing.T) {
	log, hook := test.NewNullLogger()
	c := bank.NewCatalog()
	before := c.Items(bank.KindScored)
	h := ReloadBankHandler(c, bank.FileSource{Path: "/srv/private/bank-missing.json"}, log)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/bank/reload", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "/srv/private")
	assert.Contains(t, rec.Body.String(), "bank source unavailable")
	assert.Equal(t, before, c.Items(bank.KindScored))

	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Data["error"].(error).Error(), "/srv/private/bank-missing.json")
}

func TestReloadWithoutSource(t *testing.T) {
	log, _ := test.NewNullLogger()
	rec := httptest.NewRecorder()
	ReloadBankHandler(bank.NewCatalog(), nil, log)(rec, httptest.NewRequest(http.MethodPost, "/bank/reload", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
