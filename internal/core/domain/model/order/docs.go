// Package order contains the Order aggregate: line items, the primary status
// state machine, the courier-driven delivery sub-status, and proof-of-delivery
// artifacts. Status transitions that reserve or write off stock are validated
// here; the inventory side effects themselves are applied by the application
// layer through the inventory ledger.
package order
