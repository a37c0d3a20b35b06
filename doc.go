// Package kasku implements the client side of a personal cash ledger backed
// by a remote spreadsheet endpoint.
//
// The package owns the session state (configuration, current sheet, row and
// balance snapshots), the PIN gate standing between startup and data access,
// and the sync controller that drives the fetch/replace cycle and the three
// mutations (create, edit, delete) plus settings. The remote endpoint itself
// is reached through the gas subpackage; terminal presentation lives in
// renderer and cmd.
package kasku
