package store

const (
	userColumns = `user_id, email, password_hash, available_credits, used_credits, total_credits_earned,
    is_blocked, email_verified, device_id, created_at, last_updated`

	createUser = `INSERT INTO users (email, password_hash, available_credits, total_credits_earned, device_id)
    VALUES ($1, $2, $3, $3, $4)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	setEmailVerified = `UPDATE users
    SET email_verified = TRUE, last_updated = NOW()
    WHERE user_id = $1;`

	updatePassword = `UPDATE users
    SET password_hash = $2, last_updated = NOW()
    WHERE user_id = $1;`

	getBalance = `SELECT available_credits, used_credits, total_credits_earned, last_updated
    FROM users
    WHERE user_id = $1;`

	// spendCredit is the atomic "decrement if positive" on the credit
	// counters. The WHERE clause makes overdrafts and spends on blocked
	// accounts impossible regardless of concurrent callers; zero affected
	// rows means the precondition failed and the counters are untouched.
	spendCredit = `UPDATE users
    SET available_credits = available_credits - 1,
        used_credits = used_credits + 1,
        last_updated = NOW()
    WHERE user_id = $1 AND available_credits > 0 AND is_blocked = FALSE
    RETURNING available_credits, used_credits, total_credits_earned, last_updated;`

	// grantCredits is the symmetric atomic increment.
	grantCredits = `UPDATE users
    SET available_credits = available_credits + $2,
        total_credits_earned = total_credits_earned + $2,
        last_updated = NOW()
    WHERE user_id = $1
    RETURNING available_credits, used_credits, total_credits_earned, last_updated;`

	// resetCredits zeroes only the spendable balance. The lifetime
	// used/earned counters are an audit trail and stay untouched.
	resetCredits = `UPDATE users
    SET available_credits = 0, last_updated = NOW()
    WHERE user_id = $1;`

	insertCreditAward = `INSERT INTO credit_awards (user_id, user_email, amount, reason, admin_action)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING award_id, created_at;`

	listCreditAwards = `SELECT award_id, user_id, user_email, amount, reason, admin_action, created_at
    FROM credit_awards
    WHERE user_id = $1
    ORDER BY created_at DESC;`

	setBlocked = `UPDATE users
    SET is_blocked = $2, last_updated = NOW()
    WHERE user_id = $1;`

	allUsers = `SELECT ` + userColumns + `
    FROM users;`
)
