package diagnostics

import "strings"

// createStatements holds the canonical DDL per table, emitted for manual
// execution; the service never migrates on behalf of an admin.
var createStatements = map[string]string{
	"companies": `CREATE TABLE companies (
	id BIGSERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ,
	deleted_at TIMESTAMPTZ,
	name VARCHAR(255) NOT NULL,
	industry VARCHAR(100),
	employee_count BIGINT,
	country VARCHAR(100),
	payroll_id VARCHAR(100),
	crm_id VARCHAR(100),
	status VARCHAR(50) DEFAULT 'pending'
);`,
	"renewals": `CREATE TABLE renewals (
	id BIGSERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ,
	deleted_at TIMESTAMPTZ,
	policy_id BIGINT NOT NULL REFERENCES policies(id),
	current_premium NUMERIC,
	renewal_premium NUMERIC,
	status VARCHAR(50) DEFAULT 'upcoming',
	renewal_date TIMESTAMPTZ
);`,
	"activities": `CREATE TABLE activities (
	id BIGSERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ,
	deleted_at TIMESTAMPTZ,
	entity_type VARCHAR(50) NOT NULL,
	entity_id BIGINT NOT NULL,
	description TEXT,
	actor_id BIGINT,
	system BOOLEAN DEFAULT FALSE
);`,
	"password_resets": `CREATE TABLE password_resets (
	id BIGSERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ,
	deleted_at TIMESTAMPTZ,
	profile_id BIGINT NOT NULL REFERENCES profiles(id),
	token VARCHAR(64) UNIQUE NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	used_at TIMESTAMPTZ
);`,
}

// GenerateSQL returns the CREATE TABLE text for the requested tables,
// skipping names it has no DDL for.
func GenerateSQL(tables []string) string {
	var b strings.Builder
	for _, table := range tables {
		if stmt, ok := createStatements[table]; ok {
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(stmt)
		}
	}
	return b.String()
}

// HasDDL reports whether a canned statement exists for the table.
func HasDDL(table string) bool {
	_, ok := createStatements[table]
	return ok
}
