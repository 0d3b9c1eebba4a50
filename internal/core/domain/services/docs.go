// Package services provides domain services for the certification system.
// It implements business logic that doesn't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - AssemblyPlanner: derives the document-assembly inputs (cover metadata,
//     certified text, ordered image references) from an order, for both full
//     dispatch assemblies and text-only previews
//
// Domain services stay free of IO: the planner produces a plan, and the
// outbound assembler adapter renders it.
package services
