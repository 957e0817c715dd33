// Package listview renders the rows of one page in a scrollable window.
//
// The model keeps a cursor over the current rows and renders only the rows
// that fit in its height. Replacing the rows (a new page arrived) keeps the
// cursor where it was when possible.
package listview
