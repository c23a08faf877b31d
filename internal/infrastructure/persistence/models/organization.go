package models

import (
	"github.com/google/uuid"
	"github.com/sanduq/backend/internal/domain/organization"
)

// BranchModel is the persistence model for the Branch aggregate root.
type BranchModel struct {
	CompanyAggregateModel
	Code   string `gorm:"type:varchar(50);not null;uniqueIndex:idx_branch_company_code,priority:2"`
	Name   string `gorm:"type:varchar(200);not null"`
	Phone  string `gorm:"type:varchar(30)"`
	Active bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch
func (m *BranchModel) ToDomain() *organization.Branch {
	b := &organization.Branch{
		Code:   m.Code,
		Name:   m.Name,
		Phone:  m.Phone,
		Active: m.Active,
	}
	m.PopulateCompanyAggregateRoot(&b.CompanyAggregateRoot)
	return b
}

// FromDomain populates the persistence model from a domain Branch
func (m *BranchModel) FromDomain(b *organization.Branch) {
	m.FromDomainCompanyAggregateRoot(b.CompanyAggregateRoot)
	m.Code = b.Code
	m.Name = b.Name
	m.Phone = b.Phone
	m.Active = b.Active
}

// BranchModelFromDomain creates a new persistence model from a domain Branch
func BranchModelFromDomain(b *organization.Branch) *BranchModel {
	m := &BranchModel{}
	m.FromDomain(b)
	return m
}

// WorkerModel is the persistence model for the Worker aggregate root.
type WorkerModel struct {
	CompanyAggregateModel
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`
	Code     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_worker_company_code,priority:2"`
	Name     string    `gorm:"type:varchar(200);not null"`
	Phone    string    `gorm:"type:varchar(30)"`
	Active   bool      `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (WorkerModel) TableName() string {
	return "workers"
}

// ToDomain converts the persistence model to a domain Worker
func (m *WorkerModel) ToDomain() *organization.Worker {
	w := &organization.Worker{
		BranchID: m.BranchID,
		Code:     m.Code,
		Name:     m.Name,
		Phone:    m.Phone,
		Active:   m.Active,
	}
	m.PopulateCompanyAggregateRoot(&w.CompanyAggregateRoot)
	return w
}

// FromDomain populates the persistence model from a domain Worker
func (m *WorkerModel) FromDomain(w *organization.Worker) {
	m.FromDomainCompanyAggregateRoot(w.CompanyAggregateRoot)
	m.BranchID = w.BranchID
	m.Code = w.Code
	m.Name = w.Name
	m.Phone = w.Phone
	m.Active = w.Active
}

// WorkerModelFromDomain creates a new persistence model from a domain Worker
func WorkerModelFromDomain(w *organization.Worker) *WorkerModel {
	m := &WorkerModel{}
	m.FromDomain(w)
	return m
}
