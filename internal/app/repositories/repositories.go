package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	RoleRepository        *RoleRepository
	TokenRepository       *TokenRepository
	LookupRepository      *LookupRepository
	CompanyRepository     *CompanyRepository
	StudentRepository     *StudentRepository
	PlacementRepository   *PlacementRepository
	ApplicationRepository *ApplicationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		RoleRepository:        NewRoleRepository(db),
		TokenRepository:       NewTokenRepository(db),
		LookupRepository:      NewLookupRepository(db),
		CompanyRepository:     NewCompanyRepository(db),
		StudentRepository:     NewStudentRepository(db),
		PlacementRepository:   NewPlacementRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
	}
}
