// Package dbctx threads a request context and an optional open transaction
// through repository calls as a single argument.
package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context carries the caller's context plus the transaction the call should
// join. A nil Tx means the repository runs on its own connection.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}
