// Package client talks to the remote user directory.
//
// # Overview
//
//  1. Pipeline: the authenticated request pipeline. It JSON-encodes request
//     bodies, attaches "Authorization: Bearer <token>" when the bound
//     session.Session holds a token, sends one attempt and decodes the reply.
//  2. DirectoryClient: login plus the four directory calls (list, get,
//     update, delete) on top of a Pipeline. It implements Client.
//
// # Error Handling
//
// Every non-2xx reply becomes a *StatusError and every transport failure is
// wrapped; both match ErrRequestFailed with errors.Is. Rejected logins also
// match ErrAuthFailed. 401 and 403 are not interpreted specially.
//
// Nothing here logs or retries; errors go back to the caller unchanged.
package client
