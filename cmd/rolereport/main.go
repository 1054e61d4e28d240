// Package main provides the entry point for the rolereport CLI.
//
// rolereport renders line items into CSV or HTML reports whose content
// depends on the role of the viewer: admins see every item with high-value
// items emphasized, users see only items at or below the view limit.
//
// Usage:
//
//	rolereport generate --user Ana --role ADMIN --items items.yaml
//	rolereport batch --viewer Ana=ADMIN --viewer Bob=USER --items items.yaml
//	rolereport items import items.csv
//
// See --help for all available options.
package main

// main is the entry point for rolereport.
func main() {
	Execute()
}
