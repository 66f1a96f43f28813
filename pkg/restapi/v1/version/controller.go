/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package version

import (
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
)

type router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type Config struct {
	Version       string
	ServerVersion string
	// AttestationSources lists the evidence sources consulted by the trust resolver, in order.
	AttestationSources []string
}

type Controller struct {
	version       string
	serverVersion string
	sources       []string
}

type versionResponse struct {
	Version            string   `json:"version"`
	AttestationSources []string `json:"attestation_sources,omitempty"`
}

type systemVersionResponse struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

func NewController(router router, cfg Config) *Controller {
	c := &Controller{
		version:       cfg.Version,
		serverVersion: cfg.ServerVersion,
		sources:       cfg.AttestationSources,
	}

	router.GET("/version", c.Version)
	router.GET("/version/system", c.ServerVersion)

	return c
}

// Version returns the build version and the evidence sources the service verifies callers against.
// GET /version.
func (c *Controller) Version(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, versionResponse{
		Version:            c.version,
		AttestationSources: c.sources,
	})
}

// ServerVersion returns the version of the server build.
// GET /version/system.
func (c *Controller) ServerVersion(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, systemVersionResponse{
		Version:   c.serverVersion,
		GoVersion: runtime.Version(),
	})
}
