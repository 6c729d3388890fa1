// Package users persists the two kinds of player records and their streaks.
//
// Accounts are keyed by an opaque id handed over by the sign-in flow and are
// created lazily with zeroed streaks. Local users are keyed by email, carry a
// password hash and are created explicitly at registration. Both tables hold
// the same streak columns, one set per game mode.
package users
