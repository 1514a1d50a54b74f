// Package auth implements cookie-session authentication for the JSON API.
//
// Accounts are stored in the main database with bcrypt password hashes.
// Sessions are managed by alexedwards/scs backed by a SQLite store and
// attached to Gin through the SessionLoadSave adapter. State-changing
// requests from the browser are additionally protected by gorilla/csrf.
//
// Typical wiring:
//
//	service := auth.NewService(db.DB, cfg.Auth)
//	sessions, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	router.Use(sessions.SessionLoadSave())
//	api.Use(auth.RequireAuth(sessions))
package auth
