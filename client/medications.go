package client

import (
	"context"
	"net/http"
)

// MedicationsService reads the medication directory.
type MedicationsService struct {
	service
}

type medicationsPage struct {
	Medications []Medication `json:"medications"`
	Meta        ListMeta     `json:"meta"`
}

func (s *MedicationsService) List(ctx context.Context, opts ListOptions) ([]Medication, *ListMeta, error) {
	var page medicationsPage
	if err := s.client.do(ctx, http.MethodGet, "/api/medications/"+opts.query(), nil, &page); err != nil {
		return nil, nil, err
	}
	return page.Medications, &page.Meta, nil
}

func (s *MedicationsService) Get(ctx context.Context, id string) (*Medication, error) {
	var med Medication
	if err := s.client.do(ctx, http.MethodGet, "/api/medications/"+id+"/", nil, &med); err != nil {
		return nil, err
	}
	return &med, nil
}
