// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// WithMaxRetries runs operation once and then up to maxRetries more times,
// waiting delay between attempts, until it succeeds. Errors wrapped with
// backoff.Permanent and cancellation of ctx stop the retries early.
func WithMaxRetries(
	ctx context.Context,
	logger *zap.Logger,
	operation backoff.Operation,
	maxRetries uint64,
	delay time.Duration,
) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), maxRetries),
		ctx,
	)
	attempt := 0
	notify := func(err error, next time.Duration) {
		attempt++
		logger.Warn("operation failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Duration("retryIn", next),
			zap.Error(err),
		)
	}
	return backoff.RetryNotify(operation, policy, notify)
}
