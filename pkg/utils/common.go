// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/glanger-labs/glanger-cli/pkg/constants"
)

// Context for API requests
func GetAPIContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.APIRequestTimeout)
}

// Context for API requests with large timeout
func GetAPILargeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.APIRequestLargeTimeout)
}

// RetryWithContextGen retries [fn] up to [maxAttempts] times, creating a fresh context
// with [ctxGen] for each attempt and sleeping [retryInterval] between failures
func RetryWithContextGen[T any](
	ctxGen func() (context.Context, context.CancelFunc),
	fn func(context.Context) (T, error),
	maxAttempts int,
	retryInterval time.Duration,
) (T, error) {
	const defaultRetryInterval = 2 * time.Second
	if retryInterval == 0 {
		retryInterval = defaultRetryInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	var (
		result T
		err    error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err = func() (T, error) {
			ctx, cancel := ctxGen()
			defer cancel()
			return fn(ctx)
		}()
		if err == nil {
			return result, nil
		}
		if attempt < maxAttempts-1 {
			time.Sleep(retryInterval)
		}
	}
	return result, fmt.Errorf("maximum retry attempts %d reached: last err = %w", maxAttempts, err)
}

func Map[T, U any](input []T, f func(T) U) []U {
	output := make([]U, 0, len(input))
	for _, e := range input {
		output = append(output, f(e))
	}
	return output
}
