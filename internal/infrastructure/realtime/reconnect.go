package realtime

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	sharedConfig "helpdesk/internal/shared/config"
)

// ReconnectConfig configures reconnection behavior.
type ReconnectConfig struct {
	InitialInterval     time.Duration
	MaxInterval         time.Duration
	Multiplier          float64
	RandomizationFactor float64

	// OnConnected is called each time the source goes live.
	OnConnected func()
	// OnDisconnected is called when a connection ends, with its error.
	OnDisconnected func(err error)
	// OnReconnecting is called before each retry.
	OnReconnecting func(attempt uint64, delay time.Duration)
}

// DefaultReconnectConfig returns 1s initial, 30s max, x2, 20% jitter.
func DefaultReconnectConfig() *ReconnectConfig {
	return &ReconnectConfig{
		InitialInterval:     time.Second,
		MaxInterval:         30 * time.Second,
		Multiplier:          2.0,
		RandomizationFactor: 0.2,
	}
}

// ReconnectConfigFrom converts the configured millisecond values, keeping
// defaults for anything unset.
func ReconnectConfigFrom(cfg sharedConfig.ReconnectConfig) *ReconnectConfig {
	rc := DefaultReconnectConfig()
	if cfg.InitialIntervalMs > 0 {
		rc.InitialInterval = time.Duration(cfg.InitialIntervalMs) * time.Millisecond
	}
	if cfg.MaxIntervalMs > 0 {
		rc.MaxInterval = time.Duration(cfg.MaxIntervalMs) * time.Millisecond
	}
	if cfg.Multiplier > 0 {
		rc.Multiplier = cfg.Multiplier
	}
	if cfg.RandomizationFactor > 0 {
		rc.RandomizationFactor = cfg.RandomizationFactor
	}
	return rc
}

// RunWithReconnect runs src until ctx is done, reconnecting with
// exponential backoff after every disconnect. It never gives up on its own.
// The backoff restarts from the initial interval once a connection succeeds.
func RunWithReconnect(ctx context.Context, src Source, config *ReconnectConfig, deliver func([]byte)) error {
	if config == nil {
		config = DefaultReconnectConfig()
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = config.InitialInterval
	expBackoff.MaxInterval = config.MaxInterval
	expBackoff.Multiplier = config.Multiplier
	expBackoff.RandomizationFactor = config.RandomizationFactor
	expBackoff.Reset()

	var attempt uint64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := src.Run(ctx, func() {
			attempt = 0
			expBackoff.Reset()
			if config.OnConnected != nil {
				config.OnConnected()
			}
		}, deliver)

		if config.OnDisconnected != nil {
			config.OnDisconnected(err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		attempt++
		delay := expBackoff.NextBackOff()
		if delay == backoff.Stop {
			delay = config.MaxInterval
		}

		if config.OnReconnecting != nil {
			config.OnReconnecting(attempt, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
