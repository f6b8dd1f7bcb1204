package handlers

import (
	"context"
	"errors"

	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/query"
)

type storeMock struct {
	ListFn    func(ctx context.Context, q query.Query) ([]models.Company, error)
	GetFn     func(ctx context.Context, id string) (*models.Company, error)
	CreateFn  func(ctx context.Context, c *models.Company) (*models.Company, error)
	UpdateFn  func(ctx context.Context, id string, p models.CompanyPatch) (*models.Company, error)
	ReplaceFn func(ctx context.Context, id string, c *models.Company) (*models.Company, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (m *storeMock) List(ctx context.Context, q query.Query) ([]models.Company, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, q)
}
func (m *storeMock) Get(ctx context.Context, id string) (*models.Company, error) {
	if m.GetFn == nil {
		return nil, errors.New("GetFn not set")
	}
	return m.GetFn(ctx, id)
}
func (m *storeMock) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	if m.CreateFn == nil {
		return nil, errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, c)
}
func (m *storeMock) Update(ctx context.Context, id string, p models.CompanyPatch) (*models.Company, error) {
	if m.UpdateFn == nil {
		return nil, errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, id, p)
}
func (m *storeMock) Replace(ctx context.Context, id string, c *models.Company) (*models.Company, error) {
	if m.ReplaceFn == nil {
		return nil, errors.New("ReplaceFn not set")
	}
	return m.ReplaceFn(ctx, id, c)
}
func (m *storeMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type pubMock struct {
	PublishEventFn func(ctx context.Context, ev models.CompanyEvent) error
	events         []models.CompanyEvent
}

func (p *pubMock) PublishEvent(ctx context.Context, ev models.CompanyEvent) error {
	p.events = append(p.events, ev)
	if p.PublishEventFn == nil {
		return nil
	}
	return p.PublishEventFn(ctx, ev)
}
