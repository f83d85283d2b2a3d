// Package repository holds the hand-written SQL the blog runs against PostgreSQL.
//
// Queries works over any DBTX, so the same methods run on the pool or inside a
// transaction obtained from db.WithTx:
//
//	q := repository.New(pool)
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		_, err := q.WithTx(tx).CreatePost(ctx, params)
//		return err
//	})
//
// Lookups that match no rows return errors wrapping db.ErrNotFound. Constraint
// violations are returned as the driver reported them; use db.IsUniqueViolation.
package repository
