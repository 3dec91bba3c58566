package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because a user with the same email already exists in the
	// database.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrUserNotFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrUserNotFound = errors.New("no user was found")

	// ErrInsufficientBalance is returned when an atomic spend finds the
	// available credit counter already at zero. The counters are left
	// untouched.
	ErrInsufficientBalance = errors.New("insufficient credit balance")

	// ErrUserBlocked is returned when a credit operation targets a blocked
	// account.
	ErrUserBlocked = errors.New("user account is blocked")

	// ErrAwardNotSaved is returned when an INSERT of a credit award record
	// completes without error but affects zero rows.
	ErrAwardNotSaved = errors.New("credit award was not saved")

	// ErrTokenNotFound is returned when a verification or reset token is
	// absent from the token store (unknown, expired, or already consumed).
	ErrTokenNotFound = errors.New("token not found or expired")

	// ErrLedgerNotInitialized is returned by the local credit cache before
	// the first successful sync has seeded it.
	ErrLedgerNotInitialized = errors.New("local credit ledger is not initialized")

	// ErrSessionNotFound is returned when no session is persisted locally.
	ErrSessionNotFound = errors.New("local session not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
