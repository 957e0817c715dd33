// Package source provides an in-memory dataset of records that can be
// listed, filtered, sorted and paged. It implements the fetch signatures
// expected by pkg/listapi and backs the pagekit CLI.
//
// A dataset is loaded from a YAML or JSON file of the form:
//
//	records:
//	  - id: "1"
//	    name: Ada Lovelace
//	    team: analytics
//
// Every key other than "id" becomes a field. Filtering is a case-insensitive
// substring match over the id and all fields.
package source
