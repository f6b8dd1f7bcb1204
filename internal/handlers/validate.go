package handlers

import (
	"errors"
	"net/url"
	"strings"
)

func validateCreateDTO(d CompanyCreateDTO) error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("name is required")
	}
	return validateCommon(d.EmployeeCount, d.FoundedYear, d.Website)
}

func validateUpdateDTO(d CompanyPatchDTO) error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return errors.New("name cannot be empty")
	}
	var website string
	if d.Website != nil {
		website = *d.Website
	}
	return validateCommon(d.EmployeeCount, d.FoundedYear, website)
}

func validatePutDTO(d CompanyPutDTO) error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("name is required")
	}
	return validateCommon(d.EmployeeCount, d.FoundedYear, d.Website)
}

func validateCommon(employees, founded *int, website string) error {
	if employees != nil && *employees < 0 {
		return errors.New("employee_count must be >= 0")
	}
	if founded != nil && *founded <= 0 {
		return errors.New("founded_year must be > 0")
	}
	if website != "" {
		u, err := url.Parse(website)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.New("website must be an http(s) url")
		}
	}
	return nil
}
