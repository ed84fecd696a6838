// Package models defines the core domain records for Gatherings.
//
// # Records
//
//   - Gathering: a named group of participants sharing expenses
//   - Participant: a member of a gathering who can pay or owe
//   - Expense: a payment by one participant, apportioned as owed shares
//   - Payment: a direct transfer between two participants
//   - MemberBalance: a participant's derived net position
//   - Transfer: one leg of a derived settlement plan
//
// # Money
//
// All amounts are integer minor units (cents). Floating point is never
// used for money anywhere in this codebase; decimal strings are converted
// at the MCP boundary by the money package. Balances and transfers are
// pure functions of the persisted expenses and payments and are never
// stored.
//
// # Design Principles
//
// 1. **Explicit records**: every field is compile-time checked, no
// freeform maps
// 2. **Avoid circular references**: relationships use ID strings, not
// pointers
// 3. **Derived data stays derived**: MemberBalance and Transfer have no
// lifecycle of their own
package models
