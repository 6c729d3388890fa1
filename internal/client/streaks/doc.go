// Package streaks keeps the per-user, per-mode win streaks.
//
// Each user has two independent tracks, one per game mode. A track carries a
// daily streak (calendar days with at least one win), the best daily streak
// ever seen, a consecutive-win counter that ignores day boundaries, and the
// time of the last win.
//
// Days are compared by calendar year and day of year in the ledger's
// location, never by elapsed hours. "Yesterday" is the calendar day of now
// minus one day.
//
// Updates are best effort. When nobody is signed in, or the signed-in user
// has no record, the Ledger skips the update and says so in the Outcome
// rather than creating a record on the fly; EnsureUser is the explicit
// initialization path.
package streaks
