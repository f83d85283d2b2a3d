// Package blog implements the microblog's users and posts.
//
// PostService.Save is where slugs are assigned. It asks a slug.Generator for a
// candidate that no stored post uses, commits inside a transaction, and when
// the database unique constraint still rejects the row (another writer took
// the slug in between) it rolls back, regenerates and tries again a bounded
// number of times.
//
// Stores are interfaces; PostgresStore adapts repository.Queries to them.
package blog
