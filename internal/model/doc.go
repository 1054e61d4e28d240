// Package model defines the data carriers shared by rolereport packages.
//
// This package contains the following main types:
//   - LineItem: a single row of input data (id, name, value)
//   - User: the viewer requesting a report (name and role)
//   - Role: the closed set of viewer roles
//   - Format: the closed set of output formats
//
// These types carry no rendering behavior. Role and Format are string-backed
// enumerations parsed from flags, config files and the database.
package model
