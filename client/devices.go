package client

import (
	"context"
	"net/http"
)

// DevicesService manages the device registry and connection configuration.
type DevicesService struct {
	service
}

type devicesPage struct {
	Devices []Device `json:"devices"`
	Meta    ListMeta `json:"meta"`
}

func (s *DevicesService) List(ctx context.Context, opts ListOptions) ([]Device, *ListMeta, error) {
	var page devicesPage
	if err := s.client.do(ctx, http.MethodGet, "/api/devices/"+opts.query(), nil, &page); err != nil {
		return nil, nil, err
	}
	return page.Devices, &page.Meta, nil
}

func (s *DevicesService) Get(ctx context.Context, id string) (*Device, error) {
	var device Device
	if err := s.client.do(ctx, http.MethodGet, "/api/devices/"+id+"/", nil, &device); err != nil {
		return nil, err
	}
	return &device, nil
}

func (s *DevicesService) Create(ctx context.Context, req CreateDeviceRequest) (*Device, error) {
	var device Device
	if err := s.client.do(ctx, http.MethodPost, "/api/devices/", req, &device); err != nil {
		return nil, err
	}
	return &device, nil
}

func (s *DevicesService) UpdateConnection(ctx context.Context, id string, conn DeviceConnection) (*Device, error) {
	var device Device
	err := s.client.do(ctx, http.MethodPut, "/api/devices/"+id+"/connection/",
		UpdateDeviceConnectionRequest{Connection: conn}, &device)
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// TestConnection asks the backend to probe the device's configured endpoint.
func (s *DevicesService) TestConnection(ctx context.Context, id string) (*ConnectionTestResult, error) {
	var result ConnectionTestResult
	if err := s.client.do(ctx, http.MethodPost, "/api/devices/"+id+"/test/", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *DevicesService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/api/devices/"+id+"/", nil, nil)
}
