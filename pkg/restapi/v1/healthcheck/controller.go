/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthcheck

import (
	"github.com/alexliesenfeld/health"
	"github.com/labstack/echo/v4"

	"github.com/trustbloc/walletauthz/pkg/observability/health/healthutil"
)

type router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// Config holds the dependency checks reported by the controller.
type Config struct {
	Checks []health.Check
}

// Controller for health check API.
type Controller struct {
	handler echo.HandlerFunc
}

// NewController creates Controller and registers GET /healthcheck.
func NewController(router router, config *Config) *Controller {
	responseTimes := healthutil.NewResponseTimes()

	opts := []health.CheckerOption{
		health.WithInterceptors(healthutil.ResponseTimeInterceptor(responseTimes)),
	}

	for _, check := range config.Checks {
		opts = append(opts, health.WithCheck(check))
	}

	c := &Controller{
		handler: echo.WrapHandler(health.NewHandler(
			health.NewChecker(opts...),
			health.WithResultWriter(healthutil.NewJSONResultWriter(responseTimes)),
		)),
	}

	router.GET("/healthcheck", c.GetHealthcheck)

	return c
}

// GetHealthcheck returns the health check status.
// GET /healthcheck.
func (c *Controller) GetHealthcheck(ctx echo.Context) error {
	return c.handler(ctx)
}
