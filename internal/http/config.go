package http

import (
	"github.com/unilib/backend/internal/auth"
	"github.com/unilib/backend/internal/config"
	"github.com/unilib/backend/internal/database"
	"github.com/unilib/backend/internal/database/books"
	"github.com/unilib/backend/internal/database/discounts"
	"github.com/unilib/backend/internal/database/feedback"
	"github.com/unilib/backend/internal/database/loans"
	"github.com/unilib/backend/internal/database/stats"
	"github.com/unilib/backend/internal/database/users"
	"github.com/unilib/backend/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router. This replaces a long parameter list in
// NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database  *database.Database
	Books     *books.Repository
	Loans     *loans.Repository
	Users     *users.Repository
	Stats     *stats.Repository
	Discounts *discounts.Repository
	Feedback  *feedback.Repository

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	// Background tasks (nil when the queue is disabled)
	TaskClient *tasks.Client

	// Fee estimator defaults
	FeesConfig config.Fees

	// Application info
	Version string
}
