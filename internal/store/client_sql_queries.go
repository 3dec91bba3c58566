// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// The local cache keeps exactly one ledger row and one session row, both
// pinned to id = 1. Writes are upserts so callers never have to distinguish
// first write from update.
const (
	createLedgerTable = `
		CREATE TABLE IF NOT EXISTS credit_ledger (
			id              INTEGER PRIMARY KEY CHECK (id = 1),
			available       INTEGER NOT NULL DEFAULT 0,
			used            INTEGER NOT NULL DEFAULT 0,
			total_earned    INTEGER NOT NULL DEFAULT 0,
			last_updated    DATETIME NOT NULL,
			last_generation DATETIME,
			last_synced     DATETIME
		);`

	createSessionTable = `
		CREATE TABLE IF NOT EXISTS session (
			id       INTEGER PRIMARY KEY CHECK (id = 1),
			user_id  INTEGER NOT NULL,
			email    TEXT NOT NULL,
			role     TEXT NOT NULL,
			token    TEXT NOT NULL,
			saved_at DATETIME NOT NULL
		);`

	getLedger = `
		SELECT available, used, total_earned, last_updated
		FROM credit_ledger
		WHERE id = 1;`

	spendLedgerCredit = `
		UPDATE credit_ledger SET
			available = available - 1,
			used      = used + 1
		WHERE id = 1 AND available > 0;`

	grantLedgerCredits = `
		UPDATE credit_ledger SET
			available    = available + $1,
			total_earned = total_earned + $1
		WHERE id = 1;`

	// overwriteLedger upserts so the first sync and every later one share
	// one statement. last_generation is deliberately left alone; the spend
	// cooldown survives a sync.
	overwriteLedger = `
		INSERT INTO credit_ledger (id, available, used, total_earned, last_updated, last_synced)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			available    = excluded.available,
			used         = excluded.used,
			total_earned = excluded.total_earned,
			last_updated = excluded.last_updated,
			last_synced  = excluded.last_synced;`

	getLastGeneration = `
		SELECT last_generation
		FROM credit_ledger
		WHERE id = 1;`

	setLastGeneration = `
		UPDATE credit_ledger
		SET last_generation = $1
		WHERE id = 1;`

	saveSession = `
		INSERT OR REPLACE INTO session (id, user_id, email, role, token, saved_at)
		VALUES (1, $1, $2, $3, $4, $5);`

	getSession = `
		SELECT user_id, email, role, token, saved_at
		FROM session
		WHERE id = 1;`

	deleteSession = `
		DELETE FROM session
		WHERE id = 1;`
)
