/*
Package http exposes project operations over a JSON API.

Handlers depend on ProjectService, satisfied by *project.Store. Every
failure is answered as {"error": message, "code": kind} with a status
chosen by respondError; the code is stable across releases, the message
is not.
*/
package http
