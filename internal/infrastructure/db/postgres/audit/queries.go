package audit

const (
	InsertEntry = `
		INSERT INTO activity_log (user_id, action, details)
		VALUES ($1, $2, $3)
	`
	SelectRecentEntries = `
		SELECT id, user_id, action, details, created_at
		FROM activity_log
		ORDER BY created_at DESC
		LIMIT $1
	`
)
