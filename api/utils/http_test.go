// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/govstake/builtin/staking/reverts"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("bad")), http.StatusBadRequest, "bad\n"},
		{"forbidden", Forbidden(errors.New("no")), http.StatusForbidden, "no\n"},
		{"not found", NotFound(errors.New("gone")), http.StatusNotFound, "gone\n"},
		{"no cause", &httpError{status: http.StatusTeapot}, http.StatusTeapot, ""},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error { return tt.err })(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestRevert(t *testing.T) {
	assert.Nil(t, Revert(nil))

	plain := errors.New("plain")
	assert.Equal(t, plain, Revert(plain))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(Revert(plain)))

	assert.Equal(t, http.StatusForbidden, StatusOf(Revert(reverts.NewUnauthorized("not owner"))))
	assert.Equal(t, http.StatusBadRequest, StatusOf(Revert(reverts.NewInvalidTimeWindow("early"))))
	assert.Equal(t, http.StatusBadRequest, StatusOf(Revert(errors.WithMessage(reverts.NewInvalidState("missing"), "withdraw"))))
	assert.Equal(t, http.StatusBadRequest, StatusOf(Revert(reverts.Token(errors.New("insufficient")))))
}

func TestReceiptStatus(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, ReceiptStatus("Unauthorized"))
	assert.Equal(t, http.StatusBadRequest, ReceiptStatus("InvalidTimeWindow"))
	assert.Equal(t, http.StatusBadRequest, ReceiptStatus("None"))
}

func TestParseJSON(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"a":1}`), &v))
	assert.Equal(t, 1, v.A)
	assert.Error(t, ParseJSON(strings.NewReader(`{"b":1}`), &v))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSONStatus(rec, http.StatusAccepted, M{"a": 1}))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"a":1}`, rec.Body.String())
}
