package share

const (
	InsertShare = `
		INSERT INTO share_records (file_id, owner_id, recipient_id, bytes_transferred, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING
		  id, uuid, file_id, owner_id, recipient_id, bytes_transferred, message, shared_at
	`
	// The counter increment happens inside Postgres, so concurrent shares
	// between the same pair serialize on the row instead of losing updates.
	UpsertUsage = `
		INSERT INTO usage_counters (owner_id, recipient_id, total_bytes)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, recipient_id) DO UPDATE
		SET total_bytes = usage_counters.total_bytes + EXCLUDED.total_bytes,
		    updated_at = now()
	`
	SelectUsage = `
		SELECT owner_id, recipient_id, total_bytes, created_at, updated_at
		FROM usage_counters
		WHERE owner_id = $1 AND recipient_id = $2
	`
	SelectShareExists = `
		SELECT EXISTS (
			SELECT 1 FROM share_records
			WHERE file_id = $1 AND recipient_id = $2
		)
	`
	SelectRecentShares = `
		SELECT id, uuid, file_id, owner_id, recipient_id, bytes_transferred, message, shared_at
		FROM share_records
		ORDER BY shared_at DESC
		LIMIT $1
	`
)
