// Package menu holds the outlet's static menu: orderable items, their
// categories and the subset offered as complimentary condiments.
//
// The catalog is reference data. It is parsed once at start-up (the default
// menu is embedded as menu.yaml) and never mutated afterwards, so a *Catalog
// may be shared freely between goroutines.
package menu
