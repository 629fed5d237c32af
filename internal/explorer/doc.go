// Package explorer groups the query explorer domain packages.
//
// query holds the explorer model and its classification. validation holds the
// field rule tables that gate run and save actions. actions builds the
// toolbar for a model and renders it.
package explorer
