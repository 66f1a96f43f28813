/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthutil

import (
	"context"
	"sync"
	"time"

	"github.com/alexliesenfeld/health"
)

type ResponseTimeState struct {
	LastResponseTime    time.Duration
	AverageResponseTime time.Duration
}

// ResponseTimes records check durations. It is written by the interceptor and read by the result writer.
type ResponseTimes struct {
	mu    sync.RWMutex
	state map[string]ResponseTimeState
}

func NewResponseTimes() *ResponseTimes {
	return &ResponseTimes{state: map[string]ResponseTimeState{}}
}

// Get returns the recorded response times of check name.
func (rt *ResponseTimes) Get(name string) (ResponseTimeState, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	s, ok := rt.state[name]

	return s, ok
}

func (rt *ResponseTimes) record(name string, elapsed time.Duration) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	prev, ok := rt.state[name]
	if !ok {
		rt.state[name] = ResponseTimeState{
			LastResponseTime:    elapsed,
			AverageResponseTime: elapsed,
		}

		return
	}

	rt.state[name] = ResponseTimeState{
		LastResponseTime:    elapsed,
		AverageResponseTime: (prev.AverageResponseTime + elapsed) / 2, //nolint:mnd
	}
}

// ResponseTimeInterceptor measures every check and records the result in rt.
func ResponseTimeInterceptor(rt *ResponseTimes) health.Interceptor {
	return func(next health.InterceptorFunc) health.InterceptorFunc {
		return func(ctx context.Context, name string, state health.CheckState) health.CheckState {
			now := time.Now()
			result := next(ctx, name, state)

			rt.record(name, time.Since(now))

			return result
		}
	}
}
