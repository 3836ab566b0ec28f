// Package models defines the core domain records for the community service.
//
// Three entities make up the model:
//   - User: a registered account, unique by username and by email
//   - Group: a named community, unique by name
//   - Membership: the join entity linking one User to one Group with a Role
//
// Relationships are expressed through ID strings rather than pointers to
// avoid circular references; the storage layer enforces referential
// integrity (cascading deletes) and the composite uniqueness of
// (UserID, GroupID) on memberships.
package models
