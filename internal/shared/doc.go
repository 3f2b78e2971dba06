// Package shared holds cross-cutting helpers that belong to no single
// domain layer. Currently that is testutil, the log-capture helpers used by
// package tests. Business logic never lives here.
package shared
