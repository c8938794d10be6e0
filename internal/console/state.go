package console

import (
	"time"

	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/viewmodel"
)

const (
	LoadIdle  LoadStatus = "idle"
	LoadReady LoadStatus = "ready"
	LoadError LoadStatus = "error"
)

const (
	DetailReady            DetailStatus = "ready"
	DetailNotFound         DetailStatus = "not_found"
	DetailMissingParameter DetailStatus = "missing_parameter"
	DetailError            DetailStatus = "error"
)

// LoadStatus is the outcome of the latest dashboard load.
type LoadStatus string

// DetailStatus is the outcome of a detail page load.
type DetailStatus string

// LoadState describes the latest load of a view.
type LoadState struct {
	Status    LoadStatus `json:"status"              yaml:"status"`
	Message   string     `json:"message,omitempty"   yaml:"message,omitempty"`
	TraceID   string     `json:"traceId,omitempty"   yaml:"traceId,omitempty"` //nolint:tagliatelle
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Snapshot is the last successfully loaded server list.
type Snapshot struct {
	Summaries []domain.ServerSummary
	Rows      []viewmodel.ServerRow
	Counts    viewmodel.Counts
	FetchedAt time.Time
}

// DashboardView is the content of the dashboard page.
type DashboardView struct {
	Counts  viewmodel.Counts      `json:"counts"  yaml:"counts"`
	Query   string                `json:"query"   yaml:"query"`
	Matched int                   `json:"matched" yaml:"matched"`
	Rows    []viewmodel.ServerRow `json:"servers" yaml:"servers"`
	State   LoadState             `json:"state"   yaml:"state"`
}

// DetailState is the content of the server detail page.
// Detail is only set when Status is DetailReady.
type DetailState struct {
	Status            DetailStatus                `json:"status"                      yaml:"status"`
	Message           string                      `json:"message,omitempty"           yaml:"message,omitempty"`
	Detail            *viewmodel.DetailView       `json:"detail,omitempty"            yaml:"detail,omitempty"`
	Capabilities      *viewmodel.CapabilitiesView `json:"capabilities,omitempty"      yaml:"capabilities,omitempty"`
	CapabilitiesError string                      `json:"capabilitiesError,omitempty" yaml:"capabilitiesError,omitempty"`

	// Raw is the detail as loaded, used for further processing.
	Raw *domain.ServerDetail `json:"-" yaml:"-"`
}
