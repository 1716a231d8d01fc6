package client

import (
	"context"
	"net/http"
)

// PrescriptionsService reads prescriptions.
type PrescriptionsService struct {
	service
}

type prescriptionsPage struct {
	Prescriptions []Prescription `json:"prescriptions"`
	Meta          ListMeta       `json:"meta"`
}

func (s *PrescriptionsService) List(ctx context.Context, opts ListOptions) ([]Prescription, *ListMeta, error) {
	var page prescriptionsPage
	if err := s.client.do(ctx, http.MethodGet, "/api/prescriptions/"+opts.query(), nil, &page); err != nil {
		return nil, nil, err
	}
	return page.Prescriptions, &page.Meta, nil
}

func (s *PrescriptionsService) Get(ctx context.Context, id string) (*Prescription, error) {
	var rx Prescription
	if err := s.client.do(ctx, http.MethodGet, "/api/prescriptions/"+id+"/", nil, &rx); err != nil {
		return nil, err
	}
	return &rx, nil
}
