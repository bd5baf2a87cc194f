// Package sqlstore provides SQL-backed account and task persistence.
//
// SQLite (modernc.org/sqlite) is the default on-disk store; Postgres
// (github.com/lib/pq) is supported for shared deployments. Queries are
// written once with "?" placeholders and rebound per dialect.
package sqlstore
