// Package data embeds the seed DDL used to initialize relational databases
// outside of GORM migrations (container provisioning, integration tests).
package data

import (
	_ "embed"
)

//go:embed initdb/mariadb/002-ddl-tables.sql
var InitdbMariaDBTables string

//go:embed initdb/mariadb/003-ddl-privileges.sql
var InitdbMariaDBPrivileges string
