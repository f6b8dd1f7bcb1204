package handlers

import (
	"time"

	"github.com/Werneck0live/company-directory/internal/models"
)

// id é opcional (vazio = UUID gerado pelo store). created_at zerado ou
// ausente vira o horário do servidor.
type CompanyCreateDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Industry      string    `json:"industry"`
	Location      string    `json:"location"`
	EmployeeCount *int      `json:"employee_count"`
	FoundedYear   *int      `json:"founded_year"`
	Description   string    `json:"description"`
	Website       string    `json:"website"`
	CreatedAt     time.Time `json:"created_at"`
}

// Update parcial; ponteiros distinguem "omitido" de "informado".
type CompanyPatchDTO struct {
	Name          *string `json:"name,omitempty"`
	Industry      *string `json:"industry,omitempty"`
	Location      *string `json:"location,omitempty"`
	EmployeeCount *int    `json:"employee_count,omitempty"`
	FoundedYear   *int    `json:"founded_year,omitempty"`
	Description   *string `json:"description,omitempty"`
	Website       *string `json:"website,omitempty"`
}

// PUT = replace. id no corpo é opcional, mas se vier tem que bater com a rota.
// created_at é aceito e ignorado: o store preserva o original.
type CompanyPutDTO struct {
	ID            *string    `json:"id,omitempty"`
	Name          string     `json:"name"`
	Industry      string     `json:"industry"`
	Location      string     `json:"location"`
	EmployeeCount *int       `json:"employee_count"`
	FoundedYear   *int       `json:"founded_year"`
	Description   string     `json:"description"`
	Website       string     `json:"website"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

func (d CompanyCreateDTO) toModel() models.Company {
	return models.Company{
		ID:            d.ID,
		Name:          d.Name,
		Industry:      d.Industry,
		Location:      d.Location,
		EmployeeCount: d.EmployeeCount,
		FoundedYear:   d.FoundedYear,
		Description:   d.Description,
		Website:       d.Website,
		CreatedAt:     d.CreatedAt.UTC(),
	}
}

func (d CompanyPutDTO) toModel(id string) models.Company {
	return models.Company{
		ID:            id,
		Name:          d.Name,
		Industry:      d.Industry,
		Location:      d.Location,
		EmployeeCount: d.EmployeeCount,
		FoundedYear:   d.FoundedYear,
		Description:   d.Description,
		Website:       d.Website,
	}
}

func (d CompanyPatchDTO) toPatch() models.CompanyPatch {
	return models.CompanyPatch{
		Name:          d.Name,
		Industry:      d.Industry,
		Location:      d.Location,
		EmployeeCount: d.EmployeeCount,
		FoundedYear:   d.FoundedYear,
		Description:   d.Description,
		Website:       d.Website,
	}
}
