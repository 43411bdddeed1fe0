// Package repository runs the SQL behind the DWR API.
package repository

import "errors"

// ErrNoReportID is returned when the header insert yields no generated id.
var ErrNoReportID = errors.New("report insert returned no id")
