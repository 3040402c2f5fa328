// Package server assembles the HTTP surface of the Skirmish API.
//
// Routes are split across two muxes. The console mux serves health, field
// maps, players and games under the CORS policy built from
// CORS_ALLOWED_ORIGINS. The device mux serves POST /games/search, which
// field hardware calls from arbitrary origins, under a wildcard policy.
package server
