//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoke(t *testing.T, body string, b64 bool) events.LambdaFunctionURLResponse {
	t.Helper()
	if b64 {
		body = base64.StdEncoding.EncodeToString([]byte(body))
	}
	resp, err := handle(context.Background(), events.LambdaFunctionURLRequest{Body: body, IsBase64Encoded: b64}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	return resp
}

func TestHandlerOptimizes(t *testing.T) {
	resp := invoke(t, `{"base":2,"height":2,"workers":2,"seed":5,"cards":["VV","RR","PA","GL"]}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)

	var out struct {
		Slots  []SlotResult `json:"slots"`
		Detail string       `json:"detail"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	assert.Len(t, out.Slots, 2)
	assert.Contains(t, out.Detail, "Score: ")
}

func TestHandlerRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"bad shape", `{"base":2,"height":3}`},
		{"pool too small", `{"base":3,"height":3,"cards":["VV"]}`},
		{"bad card", `{"base":1,"height":1,"cards":["ZZ"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := invoke(t, tt.body, false)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, resp.Body, `"error"`)
		})
	}
}

func TestLambdaWorkers(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		def       int
		want      int
	}{
		{"requested", 3, 8, 3},
		{"default", 0, 8, 8},
		{"requested above cap", 100, 8, maxLambdaWorkers},
		{"default above cap", 0, 64, maxLambdaWorkers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lambdaWorkers(tt.requested, tt.def))
		})
	}
}
