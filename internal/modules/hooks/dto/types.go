package dto

import "time"

type HookInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
	Events  []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type NotifyInput struct {
	Kind        string
	OccurredAt  time.Time
	PayloadJSON string
}

type DeliveryResult struct {
	Hook     string
	Accepted bool
	Message  string
	Error    string
}

type DispatchOutput struct {
	Deliveries []DeliveryResult
}
