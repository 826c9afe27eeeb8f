package search

import "gorm.io/gorm"

// Apply adds p to the WHERE clause of db.
func Apply(db *gorm.DB, p Predicate) *gorm.DB {
	sql, args := p.SQL()
	return db.Where(sql, args...)
}
