// Package cli provides the interactive Currículo Xpress command-line
// client.
//
// It wires configuration, durable storage, the session store, the API
// gateway, the resource services and the block reconciler into an
// interactive REPL. Typical flow: restore a persisted session, then
// execute user commands against the archive (educations, experiences,
// skills, projects), statements and curriculums.
//
// Key features:
//   - Register / Login / Logout with a persisted session token
//   - Archive CRUD: list, show, add, edit, delete per kind
//   - Curriculum management: create, inspect, delete
//   - Block selection: edit which archive items a curriculum includes,
//     synced as a minimal set of association calls
//   - AI statement generation from a job description
//
// The REPL is started via App.Run(ctx), which blocks until the user
// exits.
package cli
