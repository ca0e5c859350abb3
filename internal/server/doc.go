// Package server implements the local consent-callback endpoint.
//
// During the browser authorization flow the consent page redirects back to
// a short-lived local server with the music user token; the handler here
// validates the state parameter and relays the token to the waiting CLI.
package server
