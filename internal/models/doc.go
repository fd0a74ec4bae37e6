// Package models defines the core domain models for Pennyworth.
//
// # Durable Models
//
//   - HistoryRow / HistoryTable: monthly financial history used by the
//     income predictor, stored as CSV or in SQLite
//   - User: a registered account in the credential file
//   - HelpRequest: a request for a human financial assistant
//
// # Per-request Models
//
//   - W2Record: the four figures read from a wage-and-tax statement
//
// Calculator inputs and outputs live in the calculator package; chat
// sessions live in the chat package since they are never persisted.
//
// # Design Principles
//
//  1. Models carry data only; validation lives with the code that consumes it
//  2. Relationships use ID strings, never pointers
//  3. Durable tables carry a revision token so writers can detect conflicts
package models
