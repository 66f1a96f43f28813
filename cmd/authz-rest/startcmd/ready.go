/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"net/http"
	"sync/atomic"

	"github.com/labstack/echo/v4"
)

const (
	readinessEndpoint = "/ready"
)

type readiness struct {
	isReady atomic.Bool
}

func newReadinessController(router *echo.Echo) *readiness {
	r := &readiness{}

	router.GET(readinessEndpoint, func(c echo.Context) error {
		if r.isReady.Load() {
			return c.NoContent(http.StatusOK)
		}

		return c.NoContent(http.StatusServiceUnavailable)
	})

	return r
}

// Ready flips once the resolution store is open and every route is registered, and back on shutdown.
func (r *readiness) Ready(isReady bool) {
	r.isReady.Store(isReady)
}
