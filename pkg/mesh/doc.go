// Package mesh defines the read-only mesh snapshot that weight analysis
// runs against: vertices with their weighted group memberships, the group
// name table, and the face loops. Hosts either implement Source over their
// own storage or fill a Snapshot and hand that over.
package mesh
