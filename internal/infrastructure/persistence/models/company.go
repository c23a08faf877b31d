package models

import (
	"time"

	"github.com/sanduq/backend/internal/domain/tenant"
)

// CompanyModel is the persistence model for the Company aggregate root.
// Companies are platform-level rows and carry no company_id of their own.
type CompanyModel struct {
	AggregateModel
	Code          string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string `gorm:"type:varchar(200);not null"`
	Status        string `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	DeactivatedAt *time.Time
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company
func (m *CompanyModel) ToDomain() *tenant.Company {
	c := &tenant.Company{
		Code:          m.Code,
		Name:          m.Name,
		Status:        tenant.CompanyStatus(m.Status),
		DeactivatedAt: m.DeactivatedAt,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Company
func (m *CompanyModel) FromDomain(c *tenant.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Status = string(c.Status)
	m.DeactivatedAt = c.DeactivatedAt
}

// CompanyModelFromDomain creates a new persistence model from a domain Company
func CompanyModelFromDomain(c *tenant.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}
