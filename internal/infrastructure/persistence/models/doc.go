// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities carry no GORM tags or infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers (ToDomain / FromDomain) convert between the two
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: BaseModel and the AutoMigrate model list
// - identity.go: users and the company profile
// - partner.go: customers
// - catalog.go: products
// - trade.go: quotes, orders, their lines and payments
// - finance.go: expenses
package models
