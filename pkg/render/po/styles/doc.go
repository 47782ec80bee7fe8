// Package styles defines the look of a printed purchase order: palette,
// fonts, the localized label sets and small text-fitting helpers.
//
// Section renderers take every color, size and string from here so that a
// locale switch or a palette tweak never touches layout code.
package styles
