package iauditrepo

import (
	"context"

	"github.com/corray333/backend-labs/pricing/internal/service/models/auditlog"
)

// IAuditRepository is an interface for publishing price correction audit events.
type IAuditRepository interface {
	LogPriceCorrections(ctx context.Context, events []auditlog.PriceCorrection) error
}
