package server

import (
	"github.com/tablevet/tablevet/pkg/report"
	"github.com/tablevet/tablevet/pkg/suite"
)

// SuiteListResponse is the GET /v1/suites envelope.
type SuiteListResponse struct {
	Suites []*suite.Suite `json:"suites" yaml:"suites"`
	Count  int            `json:"count" yaml:"count"`
}

// ReportListResponse is the GET /v1/reports envelope.
type ReportListResponse struct {
	Reports []*report.Report `json:"reports" yaml:"reports"`
	Count   int              `json:"count" yaml:"count"`
}
