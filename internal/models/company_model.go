package models

import "time"

type Company struct {
	ID            string    `bson:"_id,omitempty" json:"id" yaml:"id"`
	Name          string    `bson:"name" json:"name" yaml:"name"`
	Industry      string    `bson:"industry" json:"industry" yaml:"industry"`
	Location      string    `bson:"location" json:"location" yaml:"location"`
	EmployeeCount *int      `bson:"employee_count,omitempty" json:"employee_count,omitempty" yaml:"employee_count,omitempty"`
	FoundedYear   *int      `bson:"founded_year,omitempty" json:"founded_year,omitempty" yaml:"founded_year,omitempty"`
	Description   string    `bson:"description" json:"description" yaml:"description"`
	Website       string    `bson:"website,omitempty" json:"website,omitempty" yaml:"website,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at" yaml:"created_at"`
}

// Update parcial; ponteiros distinguem "omitido" de "informado".
type CompanyPatch struct {
	Name          *string `json:"name,omitempty"`
	Industry      *string `json:"industry,omitempty"`
	Location      *string `json:"location,omitempty"`
	EmployeeCount *int    `json:"employee_count,omitempty"`
	FoundedYear   *int    `json:"founded_year,omitempty"`
	Description   *string `json:"description,omitempty"`
	Website       *string `json:"website,omitempty"`
}

// Clone copia também os inteiros opcionais, que são ponteiros.
func (c Company) Clone() Company {
	if c.EmployeeCount != nil {
		n := *c.EmployeeCount
		c.EmployeeCount = &n
	}
	if c.FoundedYear != nil {
		y := *c.FoundedYear
		c.FoundedYear = &y
	}
	return c
}

// Merge devolve uma cópia de c com os campos presentes em p aplicados (PATCH).
func (c Company) Merge(p CompanyPatch) Company {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Industry != nil {
		c.Industry = *p.Industry
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.EmployeeCount != nil {
		n := *p.EmployeeCount
		c.EmployeeCount = &n
	}
	if p.FoundedYear != nil {
		y := *p.FoundedYear
		c.FoundedYear = &y
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Website != nil {
		c.Website = *p.Website
	}
	return c
}

// Documento do snapshot embarcado: { "companies": [...] }
type Snapshot struct {
	Companies []Company `json:"companies" yaml:"companies"`
}

func IntPtr(n int) *int { return &n }
