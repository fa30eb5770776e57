// Package ui provides the terminal user interface for reel.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model. Catalog loads run on the fetch
// loaders' goroutines. The loaders and the session, wishlist and theme
// stores notify their listeners on every change, and Run turns those
// notifications into messages; the handlers then read the current value.
// Changes made by other contexts (other reel processes sharing the state
// file) therefore show up without user input. Leaving a view cancels its
// in-flight load, and signing out resets both loaders.
//
// # Package Structure
//
//   - app.go: Model, Update/View routing, messages, commands and Run
//   - forms.go: Sign-in and sign-up screens
//   - browse.go: Catalog list, search-as-you-type and client-side filters
//   - detail.go: Movie details and the wishlist view
//   - header.go, help.go: Chrome and the help overlay
//   - keys.go, theme.go, layout.go, helpers.go: Bindings, palettes and utilities
//
// # View Types
//
//   - Sign in / Create account: shown while signed out
//   - Browse: a category listing, a search or a discovery page, filtered and
//     sorted locally
//   - Details: one movie, loaded on demand
//   - Wishlist: the saved movies, newest first
//
// # Key Features
//
//   - Debounced search: each keystroke re-arms a timer; only the last fires
//   - Filters: genre, minimum score, release-date prefix and sort order
//   - Wishlist toggling from any list or the details view
//   - Dark and light themes, persisted and shared across contexts
package ui
