package api

import (
	"context"

	"collectibles/internal/entity/dto"

	"github.com/sirupsen/logrus"
)

// Names of the secondary lookups passed to a CompensationHandler.
const (
	LookupRefreshProfile = "refresh_profile"
	LookupDefaultAddress = "default_address"
)

// CompensationHandler is told about a secondary lookup that failed. The
// primary operation has already succeeded or continues regardless.
type CompensationHandler func(ctx context.Context, lookup string, err error)

// compensate runs a best-effort lookup. Its failure is logged and handed to
// the handler; it never reaches the caller of the primary operation.
func (c *Client) compensate(ctx context.Context, lookup string, fn func(context.Context) error) bool {
	err := fn(ctx)
	if err == nil {
		return true
	}
	c.log.WithError(err).WithField("lookup", lookup).Warn("compensating_lookup_failed")
	if c.onCompensation != nil {
		c.onCompensation(ctx, lookup, err)
	}
	return false
}

// refreshProfile reloads the cached user after a balance or profile change.
func (c *Client) refreshProfile(ctx context.Context, opts []Option) {
	c.compensate(ctx, LookupRefreshProfile, func(ctx context.Context) error {
		_, err := c.Profile(ctx, opts...)
		return err
	})
}

// lookupDefaultAddress returns the default address. The zero Address means
// the user has none or the lookup failed.
func (c *Client) lookupDefaultAddress(ctx context.Context, opts []Option) dto.Address {
	var addr dto.Address
	c.compensate(ctx, LookupDefaultAddress, func(ctx context.Context) error {
		resp, err := c.DefaultAddress(ctx, opts...)
		if err != nil {
			return err
		}
		addr = resp.Data
		return nil
	})
	if addr.ID > 0 {
		c.log.WithFields(logrus.Fields{"address_id": addr.ID}).Debug("default_address_resolved")
	}
	return addr
}
