package client

import "time"

// User is a console user account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// DeviceConnection is the network configuration of a registered device.
type DeviceConnection struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
}

// Device is a registered dispensing or monitoring device.
type Device struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	SerialNumber string           `json:"serial_number"`
	Model        string           `json:"model,omitempty"`
	Connection   DeviceConnection `json:"connection"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Medication is an entry in the medication directory.
type Medication struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DosageForm   string `json:"dosage_form,omitempty"`
	Strength     string `json:"strength,omitempty"`
	Barcode      string `json:"barcode,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
}

// Prescription links a patient to a medication regimen.
type Prescription struct {
	ID           string    `json:"id"`
	PatientName  string    `json:"patient_name"`
	MedicationID string    `json:"medication_id"`
	Dose         string    `json:"dose"`
	Frequency    string    `json:"frequency,omitempty"`
	PrescribedBy string    `json:"prescribed_by,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Order tracks fulfillment of a prescription on a device.
type Order struct {
	ID             string    `json:"id"`
	PrescriptionID string    `json:"prescription_id"`
	DeviceID       string    `json:"device_id,omitempty"`
	Quantity       int       `json:"quantity"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateUserRequest is the JSON body for POST /api/users/.
type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role"`
}

// CreateDeviceRequest is the JSON body for POST /api/devices/.
type CreateDeviceRequest struct {
	Name         string           `json:"name"`
	SerialNumber string           `json:"serial_number"`
	Model        string           `json:"model,omitempty"`
	Connection   DeviceConnection `json:"connection"`
}

// UpdateDeviceConnectionRequest is the JSON body for PUT /api/devices/{id}/connection/.
type UpdateDeviceConnectionRequest struct {
	Connection DeviceConnection `json:"connection"`
}

// ConnectionTestResult is returned from POST /api/devices/{id}/test/.
type ConnectionTestResult struct {
	Reachable bool   `json:"reachable"`
	LatencyMS int    `json:"latency_ms,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// UpdateOrderStatusRequest is the JSON body for PUT /api/orders/{id}/status/.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
