// Package poller provides the polling loop for urlcaller.
//
// This package is internal to urlcaller and handles the periodic GET of a
// single URL. There is one loop and one request in flight at a time; the
// loop suspends only while awaiting the response and while waiting out the
// delay, and both suspension points observe context cancellation.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper with per-request timeout and connection reuse
//   - [Poller]: The fixed-delay loop and its [State] machine
//   - [Outcome]: Result of a single poll
//
// Users of the urlcaller library should not need to interact with this
// package directly. Configuration is done through the main urlcaller package.
package poller
