//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
)

// maxLambdaWorkers caps the slot count a single request may ask for.
const maxLambdaWorkers = 16

// optimizeRequest is the function URL body. Cards, when present, replaces the
// built-in pool and uses the same format as cards.json.
type optimizeRequest struct {
	Base    int             `json:"base"`
	Height  int             `json:"height"`
	Workers int             `json:"workers"`
	Seed    uint64          `json:"seed"`
	Cards   json.RawMessage `json:"cards"`
}

type optimizeResponse struct {
	Result
	Detail string `json:"detail"`
}

var lambdaLog = newLogger(os.Stderr, false)

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	return handle(ctx, event, lambdaLog)
}

func handle(ctx context.Context, event events.LambdaFunctionURLRequest, log zerolog.Logger) (events.LambdaFunctionURLResponse, error) {
	raw := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return jsonResp(http.StatusBadRequest, errBody("body is not valid base64"))
		}
		raw = decoded
	}

	var req optimizeRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return jsonResp(http.StatusBadRequest, errBody("invalid JSON: "+err.Error()))
	}

	cfg := DefaultConfig()
	cfg.Base, cfg.Height, cfg.Seed = req.Base, req.Height, req.Seed
	cfg.Workers = lambdaWorkers(req.Workers, cfg.Workers)

	pyr, err := cfg.Pyramid()
	if err != nil {
		return jsonResp(http.StatusBadRequest, errBody(err.Error()))
	}

	pool, err := LoadCardPool("")
	if len(req.Cards) > 0 {
		pool, err = ParseCardPool(`{"cards":` + string(req.Cards) + `}`)
	}
	if err != nil {
		return jsonResp(http.StatusBadRequest, errBody(err.Error()))
	}

	lb, err := NewLeaderboard(pool, pyr, cfg, log)
	if err != nil {
		return jsonResp(http.StatusBadRequest, errBody(err.Error()))
	}
	res, err := lb.Optimize(ctx)
	switch {
	case errors.Is(err, ErrScoreMismatch):
		return jsonResp(http.StatusInternalServerError, errBody(err.Error()))
	case err != nil && len(res.Slots) == 0:
		return jsonResp(http.StatusServiceUnavailable, errBody(err.Error()))
	}

	return jsonResp(http.StatusOK, optimizeResponse{Result: res, Detail: FormatPermutation(res.Best().Best)})
}

// lambdaWorkers picks the requested slot count, or def when none was asked
// for, capped at maxLambdaWorkers.
func lambdaWorkers(requested, def int) int {
	if requested > 0 {
		def = requested
	}
	return min(def, maxLambdaWorkers)
}

func errBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func jsonResp(code int, v any) (events.LambdaFunctionURLResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return events.LambdaFunctionURLResponse{}, err
	}
	return events.LambdaFunctionURLResponse{
		StatusCode: code,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func main() {
	lambda.Start(handler)
}
