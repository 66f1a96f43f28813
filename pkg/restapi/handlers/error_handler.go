/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/trustbloc/walletauthz/internal/logfields"
	authorizationerr "github.com/trustbloc/walletauthz/pkg/restapi/resterr/authorization"
)

var logger = log.New("rest-err")

// retryAfterSeconds is advertised when the service cannot take requests yet, e.g. no wallet is selected.
const retryAfterSeconds = "30"

// HTTPErrorHandler renders every handler error in the authorization error format and records it on a span.
func HTTPErrorHandler(tracer trace.Tracer) func(err error, c echo.Context) {
	return func(err error, c echo.Context) {
		ctx, span := tracer.Start(c.Request().Context(), "HTTPErrorHandler")
		defer span.End()

		code, body := processError(err)

		if apiErr, ok := body.(*authorizationerr.Error); ok {
			span.SetAttributes(
				attribute.String("error.code", apiErr.Code()),
				attribute.String("error.component", apiErr.Component()),
			)
		}

		span.SetStatus(codes.Error, http.StatusText(code))
		span.RecordError(err)

		fields := []zap.Field{
			log.WithURL(c.Request().RequestURI),
			log.WithHTTPStatus(code),
			logfields.WithAdditionalMessage(err.Error()),
		}

		if code >= http.StatusInternalServerError {
			logger.Errorc(ctx, "Request failed", fields...)
		} else {
			logger.Debugc(ctx, "Request rejected", fields...)
		}

		if code == http.StatusServiceUnavailable {
			c.Response().Header().Set(echo.HeaderRetryAfter, retryAfterSeconds)
		}

		sendResponse(c, code, body)
	}
}

func sendResponse(c echo.Context, code int, body interface{}) {
	if c.Response().Committed {
		return
	}

	var err error

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}

	if err != nil {
		logger.Errorc(c.Request().Context(), "write http response", log.WithError(err))
	}
}

// processError maps err to a status and a response body. echo errors (unknown route, method not allowed)
// keep echo's status; anything that is not an authorization error is reported as system_error.
func processError(err error) (int, interface{}) {
	var authorizationError *authorizationerr.Error
	if errors.As(err, &authorizationError) {
		return authorizationError.HTTPStatus, authorizationError
	}

	var echoHTTPError *echo.HTTPError
	if errors.As(err, &echoHTTPError) {
		description := fmt.Sprint(echoHTTPError.Message)
		if echoHTTPError.Internal != nil {
			description = err.Error()
		}

		return echoHTTPError.Code, map[string]interface{}{
			"error":             echoErrorCode(echoHTTPError.Code),
			"error_description": description,
		}
	}

	return http.StatusInternalServerError, authorizationerr.NewSystemError(err)
}

func echoErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "request_too_large"
	default:
		if status >= http.StatusInternalServerError {
			return "system_error"
		}

		return "invalid_request"
	}
}
