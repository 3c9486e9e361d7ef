package result

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_WriteResponse(t *testing.T) {
	testCases := []struct {
		name         string
		r            Result
		expectStatus int
		expectBody   string
		expectHeader map[string]string
	}{
		{
			name:         "ok with body",
			r:            OK(map[string]int{"n": 1}),
			expectStatus: http.StatusOK,
			expectBody:   `{"n":1}`,
			expectHeader: map[string]string{"Content-Type": "application/json"},
		},
		{
			name:         "no content",
			r:            NoContent("user %s logged out", "ahab"),
			expectStatus: http.StatusNoContent,
			expectBody:   "",
		},
		{
			name:         "bad command",
			r:            BadCommand("nope", "grid-letter", "fire K 1"),
			expectStatus: http.StatusBadRequest,
			expectBody:   `{"error":"nope","status":400,"rule":"grid-letter","input":"fire K 1"}`,
		},
		{
			name:         "unauthorized sets challenge",
			r:            Unauthorized(""),
			expectStatus: http.StatusUnauthorized,
			expectBody:   `{"error":"You are not authorized to do that","status":401}`,
			expectHeader: map[string]string{"WWW-Authenticate": `Bearer realm="Salvo relay", charset="utf-8"`},
		},
		{
			name:         "text error",
			r:            TextErr(http.StatusInternalServerError, "boom", "panic"),
			expectStatus: http.StatusInternalServerError,
			expectBody:   "boom",
			expectHeader: map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := httptest.NewRecorder()

			tc.r.WriteResponse(w)

			assert.Equal(tc.expectStatus, w.Code)
			if json.Valid([]byte(tc.expectBody)) && tc.expectBody != "" {
				assert.JSONEq(tc.expectBody, w.Body.String())
			} else {
				assert.Equal(tc.expectBody, w.Body.String())
			}
			for k, v := range tc.expectHeader {
				assert.Equal(v, w.Header().Get(k))
			}
		})
	}
}

func Test_InternalMessage(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("created", Created(nil).InternalMsg)
	assert.Equal("player ahab created", Created(nil, "player %s created", "ahab").InternalMsg)
	assert.True(Forbidden().IsErr)
}

func Test_WithHeader_doesNotShareHeaders(t *testing.T) {
	assert := assert.New(t)

	base := OK("x").WithHeader("A", "1")
	one := base.WithHeader("B", "2")
	two := base.WithHeader("C", "3")

	assert.Len(one.hdrs, 2)
	assert.Len(two.hdrs, 2)
	assert.Equal("B", one.hdrs[1][0])
	assert.Equal("C", two.hdrs[1][0])
}

func Test_Redirection(t *testing.T) {
	assert := assert.New(t)
	w := httptest.NewRecorder()

	Redirection("/api/v1/info").WriteResponse(w)

	assert.Equal(http.StatusPermanentRedirect, w.Code)
	assert.Equal("/api/v1/info", w.Header().Get("Location"))
	assert.Empty(w.Body.String())
}
