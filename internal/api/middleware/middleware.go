// Package middleware carries the cross-cutting filters for the REST API.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

// ErrorResponse is the JSON body returned for every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// HandleError writes a structured error entity with the given status code.
func HandleError(resp *restful.Response, err error, status int) {
	resp.WriteHeaderAndEntity(status, ErrorResponse{
		Error: err.Error(),
		Code:  status,
	})
}

// Logger returns a filter that logs one line per request.
func Logger(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		start := time.Now()
		chain.ProcessFilter(req, resp)

		logger.Info().
			Str("method", req.Request.Method).
			Str("path", req.Request.URL.Path).
			Int("status", resp.StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

// RecoverPanic converts handler panics into a 500 instead of killing the
// process.
func RecoverPanic(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Str("path", req.Request.URL.Path).
					Msg("handler panicked")

				resp.WriteHeaderAndEntity(http.StatusInternalServerError, ErrorResponse{
					Error: "internal server error",
					Code:  http.StatusInternalServerError,
				})
			}
		}()
		chain.ProcessFilter(req, resp)
	}
}
