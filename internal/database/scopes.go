package database

import (
	"gorm.io/gorm"

	"github.com/theshahinrg/crm-api/internal/utils"
)

// OwnedBy restricts a query to rows owned by the acting user. Every record
// access goes through this (or a join on projects.user_id for invoices), so a
// foreign id behaves exactly like a missing one.
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
