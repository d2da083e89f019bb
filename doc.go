// Package drivedash provides the core data model for a Google Drive file
// dashboard: entities, quota snapshots, listing query descriptors, upload
// tasks, and the session gate every remote operation depends on.
//
// The model is provider-shaped but provider-independent in type: remote
// responses are normalized into these types at the drive package boundary and
// never flow inward untyped.
package drivedash
