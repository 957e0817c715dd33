// Package listapi binds asynchronous list and page fetchers to observable state.
//
// Four helpers cover the combinations of filter and pagination:
//
//	NewListAPI          fetch()                   loads at once, reloads on Update
//	NewFilteredListAPI  fetch(filter)             debounced reload on filter change
//	NewPageAPI          fetch(pagination)         debounced reload on page/size/sort change
//	NewFilteredPageAPI  fetch(filter, pagination) both, with page reset on filter change
//
// Every helper exposes its state as reactive cells (items or content, a
// freshness token, Loading and Error) that a UI subscribes to. Update sets
// Loading synchronously and schedules a fetch; within one debounce window
// only the latest trigger is fetched. Fetches that overlap are neither
// serialized nor cancelled, so by default the last one to settle wins.
// WithStaleGuard discards completions that were overtaken by a newer fetch.
//
// Fetch failures are stored verbatim in Error and never returned or panicked
// to the caller. A later success does not clear Error.
package listapi
