package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// It lets the use case layer run multi-step work atomically without depending
// on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction. If the function
	// returns an error, the transaction is rolled back; otherwise it commits.
	// All repositories obtained from the factory share the transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repository instances bound to one transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	OrderRepo() OrderRepository
	ReservationRepo() ReservationRepository
	MenuItemRepo() MenuItemRepository
	PromoRepo() PromoRepository
	ReviewRepo() ReviewRepository
	VerificationRepo() VerificationRepository
}
