// Package session is the per-document context a host keeps around the
// overlap tools. It owns the current overlap table, replaces it on every
// analysis, and turns each operation into a Report for the host to show.
//
// The host is reached only through the Host interface: the session asks it
// for a mesh snapshot, switches modes with WithMode, and hands back face
// selections. Nothing in the session is global, so a host with several
// open documents creates one Session per document.
package session
