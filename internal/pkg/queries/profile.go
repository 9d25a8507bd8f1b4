package queries

const (
	// Store schemas are owned by external provisioning flows; this pipeline
	// only ever reads one row by principal id.
	FindClinicianByUserID = `
		SELECT user_id, name, specialty, phone, license_number, is_active
		FROM clinicians
		WHERE user_id = $1
	`

	FindClientByUserID = `
		SELECT user_id, email, first_name, last_name, phone
		FROM clients
		WHERE user_id = $1
	`

	FindAdminByUserID = `
		SELECT user_id, email, name, phone
		FROM admins
		WHERE user_id = $1
	`
)
