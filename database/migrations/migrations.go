// Package migrations holds the schema history of the shop database.
// Each migration registers itself from init(); importing this package for
// side effects is enough to make them visible to the migration runner.
package migrations
