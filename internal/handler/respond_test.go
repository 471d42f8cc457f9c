package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"stipend/pkg/errors"
)

func TestStatusForMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{errors.ErrInvalidIdentifier, http.StatusBadRequest},
		{errors.ErrInvalidAmount, http.StatusBadRequest},
		{errors.ErrNotFuture, http.StatusBadRequest},
		{errors.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.ErrRecipientNotFound, http.StatusNotFound},
		{errors.ErrPeriodNotFound, http.StatusNotFound},
		{errors.ErrAlreadyActive, http.StatusConflict},
		{errors.ErrNotActive, http.StatusConflict},
		{errors.ErrAlreadySettled, http.StatusConflict},
		{errors.ErrPeriodSettled, http.StatusConflict},
		{errors.ErrTooEarly, http.StatusConflict},
		{errors.ErrTransferFailed, http.StatusConflict},
		{errors.ErrInsufficientFunds, http.StatusConflict},
		{errors.ErrSystemPaused, http.StatusServiceUnavailable},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, statusFor(tc.err), tc.err.Error())
	}
}

func TestStatusForUnwrapsWrappedSentinels(t *testing.T) {
	wrapped := errors.Wrap(errors.ErrPeriodSettled, "batch aborted")
	assert.Equal(t, http.StatusConflict, statusFor(wrapped))
}

func TestPeriodIDRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"abc", "-1", "1.5", ""} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/periods/x", nil)
		r = mux.SetURLVars(r, map[string]string{"id": raw})

		_, ok := periodID(w, r)

		assert.False(t, ok, "id %q should be rejected", raw)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestRecipientIDParsesUUID(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/recipients/x", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "0e7bd083-11bd-47b0-a11b-faaa6ae7cbf5"})

	id, ok := recipientID(w, r)

	assert.True(t, ok)
	assert.Equal(t, "0e7bd083-11bd-47b0-a11b-faaa6ae7cbf5", id.String())
}
