package file

const (
	SelectFileByID = `
		SELECT id, uuid, owner_id, file_name, content_type, size_bytes, stored_path, remote_url, created_at, deleted_at
		FROM file_records
		WHERE uuid = $1 AND deleted_at IS NULL
	`
	SelectOwnerFiles = `
		SELECT id, uuid, owner_id, file_name, content_type, size_bytes, stored_path, remote_url, created_at, deleted_at
		FROM file_records
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 50 OFFSET ( ($2 - 1) * 50 )
	`
	InsertFile = `
		INSERT INTO file_records (owner_id, file_name, content_type, size_bytes, stored_path, remote_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING
		  id, uuid, owner_id, file_name, content_type, size_bytes, stored_path, remote_url, created_at, deleted_at
	`
	SoftDeleteFile = `
		UPDATE file_records
		SET deleted_at = now()
		WHERE uuid = $1 AND deleted_at IS NULL
	`
)
