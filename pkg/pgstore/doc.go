// Package pgstore implements the modelkit persistence contract
// (schema.Store) on PostgreSQL using the pgx/v5 driver.
//
// Each schema maps to one table named after the schema, with one column per
// declared field; to-one relation columns hold the related record's identity.
// To-many attachments use a join table named <owner>_<field> with
// <owner>_id and <related>_id columns. The package never creates or migrates
// tables — the layout is the caller's responsibility.
//
// Connection handling follows the same shape as the rest of the module's
// infrastructure packages: a Config populated from environment variables via
// github.com/caarlos0/env (with an optional .env file through godotenv), and
// a Connect helper that opens a *pgxpool.Pool with retry.
//
//	cfg, err := pgstore.LoadConfig()
//	pool, err := pgstore.Connect(ctx, cfg)
//	store := pgstore.New(pool)
//	v, err := validate.New(rec, store)
//
// Uniqueness checks issued by the validation layer are plain SELECTs; they
// are check-then-act and carry no transactional guarantee. Put a database
// unique index on the column when uniqueness must hold under concurrency —
// Save will then surface the constraint violation as an error.
package pgstore
